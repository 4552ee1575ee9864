package media

import (
	"context"
	"errors"
	"io"
)

// ErrUploadsDisabled is returned when no media service is configured.
var ErrUploadsDisabled = errors.New("image uploads are not configured")

// Disabled is the Uploader used when CLOUDINARY_URL is unset. Uploads fail;
// deletes are ignored so profile updates that only clear a URL still work.
type Disabled struct{}

func (Disabled) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	return "", ErrUploadsDisabled
}

func (Disabled) Delete(ctx context.Context, url string) error {
	return nil
}
