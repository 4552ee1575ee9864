package auth

import (
	"testing"
	"time"

	"gigboard/internal/gigerrors"
	model "gigboard/internal/models"

	"github.com/stretchr/testify/require"
)

func TestTokenManager_AccessTokenRoundtrip(t *testing.T) {
	t.Parallel()

	manager := NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	user := model.User{
		UserID:    "u1",
		Name:      "Alice",
		Email:     "alice@example.com",
		Username:  "alice",
		AvatarURL: "https://cdn.example.com/a.png",
	}

	token, err := manager.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := manager.ParseAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.Subject)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "Alice", claims.Name)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, user.AvatarURL, claims.AvatarURL)
}

func TestTokenManager_RefreshTokenRoundtrip(t *testing.T) {
	t.Parallel()

	manager := NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)

	token, err := manager.GenerateRefreshToken("u1")
	require.NoError(t, err)

	userID, err := manager.ParseRefreshToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1", userID)

	// Access and refresh tokens are signed with independent secrets and must
	// not be interchangeable.
	_, err = manager.ParseAccessToken(token)
	require.ErrorIs(t, err, gigerrors.ErrInvalidToken)
}

func TestTokenManager_InvalidTokens(t *testing.T) {
	t.Parallel()

	manager := NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	other := NewTokenManager("wrong-access", "wrong-refresh", 15*time.Minute, time.Hour)

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "garbage",
			token: func(t *testing.T) string { return "not.a.token" },
		},
		{
			name:  "empty",
			token: func(t *testing.T) string { return "" },
		},
		{
			name: "wrong_secret",
			token: func(t *testing.T) string {
				tok, err := other.GenerateAccessToken(model.User{UserID: "u1"})
				require.NoError(t, err)
				return tok
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				expired := NewTokenManager("access-secret", "refresh-secret", -time.Minute, time.Hour)
				tok, err := expired.GenerateAccessToken(model.User{UserID: "u1"})
				require.NoError(t, err)
				return tok
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := manager.ParseAccessToken(tc.token(t))
			require.ErrorIs(t, err, gigerrors.ErrInvalidToken)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret!", hash)

	require.True(t, CheckPassword(hash, "s3cret!"))
	require.False(t, CheckPassword(hash, "wrong"))
	require.False(t, CheckPassword("", "s3cret!"))
}
