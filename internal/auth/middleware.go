package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gigboard/internal/gigerrors"
	model "gigboard/internal/models"
	"gigboard/internal/repository"
	"gigboard/utils"
)

const userContextKey = "currentUser"

// AccessTokenCookie is the cookie fallback for clients that cannot set the
// Authorization header (the websocket handshake from a browser, for one).
const AccessTokenCookie = "accessToken"

// RequireAuth verifies the access token from the Authorization header or
// the accessToken cookie, resolves the account, and stores it in the
// request context for handlers to read via CurrentUser.
func RequireAuth(tokens *TokenManager, users repository.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, gigerrors.ErrInvalidToken, "authentication required")
			c.Abort()
			return
		}

		claims, err := tokens.ParseAccessToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, gigerrors.ErrInvalidToken, "invalid access token")
			c.Abort()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), claims.Subject)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, gigerrors.ErrInvalidToken, "invalid access token")
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by RequireAuth
func CurrentUser(c *gin.Context) (model.User, bool) {
	val, ok := c.Get(userContextKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := val.(model.User)
	return user, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
