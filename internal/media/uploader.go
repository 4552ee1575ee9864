package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader hosts user images on an external media service.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string) (string, error)
	Delete(ctx context.Context, url string) error
}

// CloudinaryUploader implements Uploader against Cloudinary.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader builds an uploader from a cloudinary:// URL
func NewCloudinaryUploader(cloudinaryURL string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

// Upload stores the file and returns its delivery URL
func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("upload image: empty delivery URL (%s)", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// Delete removes a previously uploaded image by its delivery URL
func (u *CloudinaryUploader) Delete(ctx context.Context, url string) error {
	publicID, ok := publicIDFromURL(url)
	if !ok {
		return fmt.Errorf("delete image: cannot derive public ID from %q", url)
	}
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("delete image %s: %w", publicID, err)
	}
	return nil
}

// publicIDFromURL extracts the Cloudinary public ID from a delivery URL:
// everything after the /upload/ segment, minus the version segment the
// delivery URL carries (/upload/v12345/folder/id.ext) and the file
// extension.
func publicIDFromURL(url string) (string, bool) {
	parts := strings.Split(url, "/")
	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx < 0 || uploadIdx == len(parts)-1 {
		return "", false
	}

	rest := parts[uploadIdx+1:]
	if len(rest) > 1 && isVersionSegment(rest[0]) {
		rest = rest[1:]
	}

	withExt := strings.Join(rest, "/")
	if dot := strings.LastIndex(withExt, "."); dot > strings.LastIndex(withExt, "/") {
		withExt = withExt[:dot]
	}
	return withExt, true
}

// isVersionSegment reports whether s is a delivery-URL version marker ("v"
// followed by digits only).
func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
