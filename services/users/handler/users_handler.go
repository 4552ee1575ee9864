package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"gigboard/internal/auth"
	model "gigboard/internal/models"
	user "gigboard/internal/userService"
	"gigboard/services/helpers"
	"gigboard/utils"

	"github.com/gin-gonic/gin"
)

// maxImageSize bounds avatar and cover uploads to 8 MiB.
const maxImageSize = 8 << 20

type UserServiceInterface interface {
	Register(ctx context.Context, name, email, username, password string) (model.User, error)
	Login(ctx context.Context, email, password string) (model.User, user.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.User, user.TokenPair, error)
	Logout(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	UpdateAccount(ctx context.Context, userID, name, email string) (model.User, error)
	UpdateAvatar(ctx context.Context, userID string, file io.Reader) (model.User, error)
	UpdateCoverImage(ctx context.Context, userID string, file io.Reader) (model.User, error)
}

type UsersHandler struct {
	service UserServiceInterface
}

func NewUsersHandler(service UserServiceInterface) *UsersHandler {
	return &UsersHandler{service: service}
}

// RegisterHandler handles POST /api/auth/register
func (h *UsersHandler) RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	account, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Username, req.Password)
	if err != nil {
		helpers.HandleServiceError(c, "RegisterHandler", err, map[string]any{"email": req.Email})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, toUserResponse(account), "user registered successfully")
	helpers.LogSuccess("RegisterHandler", "user registered successfully", map[string]any{
		"user_id":  account.UserID,
		"username": account.Username,
	})
}

// LoginHandler handles POST /api/auth/login. Tokens are returned in the
// body and mirrored as httpOnly cookies for browser clients.
func (h *UsersHandler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	account, pair, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		helpers.HandleServiceError(c, "LoginHandler", err, map[string]any{"email": req.Email})
		return
	}

	setSessionCookies(c, pair)
	utils.JSONResponse(c, http.StatusOK, SessionResponse{
		User:         toUserResponse(account),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "logged in successfully")
	helpers.LogSuccess("LoginHandler", "logged in successfully", map[string]any{"user_id": account.UserID})
}

// RefreshTokenHandler handles POST /api/users/refresh-token. The refresh
// token may arrive in the body or in the refreshToken cookie.
func (h *UsersHandler) RefreshTokenHandler(c *gin.Context) {
	var req RefreshRequest
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken == "" {
		if cookie, err := c.Cookie("refreshToken"); err == nil {
			req.RefreshToken = cookie
		}
	}

	account, pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		helpers.HandleServiceError(c, "RefreshTokenHandler", err, nil)
		return
	}

	setSessionCookies(c, pair)
	utils.JSONResponse(c, http.StatusOK, SessionResponse{
		User:         toUserResponse(account),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "token refreshed successfully")
}

// LogoutHandler handles POST /api/users/logout
func (h *UsersHandler) LogoutHandler(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.service.Logout(c.Request.Context(), actor.UserID); err != nil {
		helpers.HandleServiceError(c, "LogoutHandler", err, map[string]any{"user_id": actor.UserID})
		return
	}

	clearSessionCookies(c)
	utils.JSONResponse(c, http.StatusOK, nil, "logged out successfully")
	helpers.LogSuccess("LogoutHandler", "logged out successfully", map[string]any{"user_id": actor.UserID})
}

// CurrentUserHandler handles GET /api/users/current-user
func (h *UsersHandler) CurrentUserHandler(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	utils.JSONResponse(c, http.StatusOK, toUserResponse(actor), "user retrieved successfully")
}

// ChangePasswordHandler handles POST /api/users/change-password
func (h *UsersHandler) ChangePasswordHandler(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ChangePasswordHandler", err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), actor.UserID, req.OldPassword, req.NewPassword); err != nil {
		helpers.HandleServiceError(c, "ChangePasswordHandler", err, map[string]any{"user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "password changed successfully")
	helpers.LogSuccess("ChangePasswordHandler", "password changed successfully", map[string]any{"user_id": actor.UserID})
}

// UpdateAccountHandler handles PATCH /api/users/update-account
func (h *UsersHandler) UpdateAccountHandler(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAccountHandler", err)
		return
	}

	account, err := h.service.UpdateAccount(c.Request.Context(), actor.UserID, req.Name, req.Email)
	if err != nil {
		helpers.HandleServiceError(c, "UpdateAccountHandler", err, map[string]any{"user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, toUserResponse(account), "account updated successfully")
	helpers.LogSuccess("UpdateAccountHandler", "account updated successfully", map[string]any{"user_id": actor.UserID})
}

// UpdateAvatarHandler handles PATCH /api/users/avatar
func (h *UsersHandler) UpdateAvatarHandler(c *gin.Context) {
	h.updateImage(c, "UpdateAvatarHandler", "avatar", h.service.UpdateAvatar)
}

// UpdateCoverImageHandler handles PATCH /api/users/cover-image
func (h *UsersHandler) UpdateCoverImageHandler(c *gin.Context) {
	h.updateImage(c, "UpdateCoverImageHandler", "cover_image", h.service.UpdateCoverImage)
}

func (h *UsersHandler) updateImage(c *gin.Context, handlerName, field string, update func(context.Context, string, io.Reader) (model.User, error)) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	fileHeader, err := c.FormFile(field)
	if err != nil {
		helpers.HandleBindError(c, handlerName, err)
		return
	}
	if fileHeader.Size > maxImageSize {
		utils.JSONError(c, http.StatusRequestEntityTooLarge, fmt.Errorf("image exceeds %d bytes", maxImageSize), "image too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		helpers.HandleBindError(c, handlerName, err)
		return
	}
	defer file.Close()

	account, err := update(c.Request.Context(), actor.UserID, file)
	if err != nil {
		helpers.HandleServiceError(c, handlerName, err, map[string]any{"user_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, toUserResponse(account), "image updated successfully")
	helpers.LogSuccess(handlerName, "image updated successfully", map[string]any{"user_id": actor.UserID})
}

func setSessionCookies(c *gin.Context, pair user.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.AccessTokenCookie, pair.AccessToken, 0, "/", "", true, true)
	c.SetCookie("refreshToken", pair.RefreshToken, 0, "/", "", true, true)
}

func clearSessionCookies(c *gin.Context) {
	c.SetCookie(auth.AccessTokenCookie, "", -1, "/", "", true, true)
	c.SetCookie("refreshToken", "", -1, "/", "", true, true)
}
