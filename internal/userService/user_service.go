package user

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"gigboard/internal/auth"
	"gigboard/internal/gigerrors"
	"gigboard/internal/media"
	model "gigboard/internal/models"
	"gigboard/internal/repository"
	"gigboard/utils"
)

const (
	minPasswordLength = 6

	avatarFolder = "gigboard/avatars"
	coverFolder  = "gigboard/covers"
)

// TokenPair is an access/refresh token pair issued at login and rotated on
// refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService defines account management: registration, sessions and
// profile editing.
type UserService struct {
	store    repository.Store
	tokens   *auth.TokenManager
	uploader media.Uploader
}

// NewUserService creates a new UserService instance
func NewUserService(store repository.Store, tokens *auth.TokenManager, uploader media.Uploader) *UserService {
	return &UserService{
		store:    store,
		tokens:   tokens,
		uploader: uploader,
	}
}

// Register creates an account with a unique email and username
func (s *UserService) Register(ctx context.Context, name, email, username, password string) (model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.ToLower(strings.TrimSpace(username))

	if name == "" || email == "" || username == "" {
		return model.User{}, fmt.Errorf("service: %w - name, email and username required", gigerrors.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return model.User{}, fmt.Errorf("service: %w - malformed email", gigerrors.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return model.User{}, fmt.Errorf("service: %w - password must be at least %d characters", gigerrors.ErrInvalidInput, minPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.User{}, fmt.Errorf("service: failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	account := model.User{
		UserID:    utils.GenerateID(),
		Name:      name,
		Email:     email,
		Username:  username,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Users().InsertUser(ctx, account); err != nil {
		return model.User{}, fmt.Errorf("service: failed to register %s: %w", email, err)
	}
	return account, nil
}

// Login verifies credentials and issues a token pair. The refresh token is
// persisted on the account so it can be invalidated by logout or rotation.
func (s *UserService) Login(ctx context.Context, email, password string) (model.User, TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return model.User{}, TokenPair{}, fmt.Errorf("service: %w - email and password required", gigerrors.ErrInvalidInput)
	}

	account, err := s.store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		return model.User{}, TokenPair{}, fmt.Errorf("service: login %s: %w", email, gigerrors.ErrInvalidCredentials)
	}
	if !auth.CheckPassword(account.Password, password) {
		return model.User{}, TokenPair{}, fmt.Errorf("service: login %s: %w", email, gigerrors.ErrInvalidCredentials)
	}

	pair, err := s.issueTokens(ctx, &account)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}
	return account, pair, nil
}

// Refresh rotates the token pair for a valid, currently stored refresh token
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (model.User, TokenPair, error) {
	userID, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return model.User{}, TokenPair{}, fmt.Errorf("service: refresh: %w", gigerrors.ErrInvalidToken)
	}

	account, err := s.store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return model.User{}, TokenPair{}, fmt.Errorf("service: refresh: %w", gigerrors.ErrInvalidToken)
	}
	if account.RefreshToken == "" || account.RefreshToken != refreshToken {
		return model.User{}, TokenPair{}, fmt.Errorf("service: refresh: %w", gigerrors.ErrInvalidToken)
	}

	pair, err := s.issueTokens(ctx, &account)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}
	return account, pair, nil
}

// Logout invalidates the stored refresh token
func (s *UserService) Logout(ctx context.Context, userID string) error {
	account, err := s.store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("service: logout %s: %w", userID, err)
	}
	account.RefreshToken = ""
	account.UpdatedAt = time.Now().UTC()
	if err := s.store.Users().UpdateUser(ctx, account); err != nil {
		return fmt.Errorf("service: logout %s: %w", userID, err)
	}
	return nil
}

// GetByID returns the account for userID
func (s *UserService) GetByID(ctx context.Context, userID string) (model.User, error) {
	account, err := s.store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("service: failed to get user %s: %w", userID, err)
	}
	return account, nil
}

// ChangePassword verifies the old password before storing the new one
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("service: %w - password must be at least %d characters", gigerrors.ErrInvalidInput, minPasswordLength)
	}

	account, err := s.store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("service: change password for %s: %w", userID, err)
	}
	if !auth.CheckPassword(account.Password, oldPassword) {
		return fmt.Errorf("service: change password for %s: %w", userID, gigerrors.ErrInvalidCredentials)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("service: failed to hash password: %w", err)
	}
	account.Password = hash
	account.UpdatedAt = time.Now().UTC()
	if err := s.store.Users().UpdateUser(ctx, account); err != nil {
		return fmt.Errorf("service: change password for %s: %w", userID, err)
	}
	return nil
}

// UpdateAccount applies a partial update to name and email
func (s *UserService) UpdateAccount(ctx context.Context, userID, name, email string) (model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" && email == "" {
		return model.User{}, fmt.Errorf("service: %w - at least one of name or email is required", gigerrors.ErrInvalidInput)
	}

	account, err := s.store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("service: update account %s: %w", userID, err)
	}

	if name != "" {
		account.Name = name
	}
	if email != "" && email != account.Email {
		if !strings.Contains(email, "@") {
			return model.User{}, fmt.Errorf("service: %w - malformed email", gigerrors.ErrInvalidInput)
		}
		if _, err := s.store.Users().GetUserByEmail(ctx, email); err == nil {
			return model.User{}, fmt.Errorf("service: update account %s: %w", userID, gigerrors.ErrEmailTaken)
		}
		account.Email = email
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.store.Users().UpdateUser(ctx, account); err != nil {
		return model.User{}, fmt.Errorf("service: update account %s: %w", userID, err)
	}
	return account, nil
}

// UpdateAvatar uploads a new avatar image and deletes the previous one
// best-effort once the new URL is stored
func (s *UserService) UpdateAvatar(ctx context.Context, userID string, file io.Reader) (model.User, error) {
	return s.updateImage(ctx, userID, file, avatarFolder, func(u *model.User) *string { return &u.AvatarURL })
}

// UpdateCoverImage uploads a new cover image, replacing the previous one
func (s *UserService) UpdateCoverImage(ctx context.Context, userID string, file io.Reader) (model.User, error) {
	return s.updateImage(ctx, userID, file, coverFolder, func(u *model.User) *string { return &u.CoverImageURL })
}

func (s *UserService) updateImage(ctx context.Context, userID string, file io.Reader, folder string, field func(*model.User) *string) (model.User, error) {
	if file == nil {
		return model.User{}, fmt.Errorf("service: %w - image file is required", gigerrors.ErrInvalidInput)
	}

	account, err := s.store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("service: update image for %s: %w", userID, err)
	}

	url, err := s.uploader.Upload(ctx, file, folder)
	if err != nil {
		return model.User{}, fmt.Errorf("service: failed to upload image for %s: %w", userID, err)
	}

	old := *field(&account)
	*field(&account) = url
	account.UpdatedAt = time.Now().UTC()
	if err := s.store.Users().UpdateUser(ctx, account); err != nil {
		return model.User{}, fmt.Errorf("service: update image for %s: %w", userID, err)
	}

	if old != "" {
		if err := s.uploader.Delete(ctx, old); err != nil {
			utils.Warn("user: cannot delete old image", map[string]any{"user_id": userID, "url": old, "error": err.Error()})
		}
	}
	return account, nil
}

func (s *UserService) issueTokens(ctx context.Context, account *model.User) (TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(*account)
	if err != nil {
		return TokenPair{}, fmt.Errorf("service: failed to issue access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(account.UserID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("service: failed to issue refresh token: %w", err)
	}

	account.RefreshToken = refresh
	account.UpdatedAt = time.Now().UTC()
	if err := s.store.Users().UpdateUser(ctx, *account); err != nil {
		return TokenPair{}, fmt.Errorf("service: failed to persist refresh token: %w", err)
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
