package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"gigboard/internal/gigerrors"
	"gigboard/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message.
// The hire workflow's merged error kinds keep their merged messages: a
// caller cannot tell a missing bid from a processed one, nor a missing gig
// from one they do not own or one already assigned.
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, gigerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found or already processed"
	case errors.Is(err, gigerrors.ErrNotAuthorizedOrClosed):
		return http.StatusBadRequest, "gig not found, not owned by you, or already assigned"
	case errors.Is(err, gigerrors.ErrTransactionFailed):
		return http.StatusInternalServerError, "could not complete the operation, please retry"
	case errors.Is(err, gigerrors.ErrGigNotFound):
		return http.StatusNotFound, "gig not found"
	case errors.Is(err, gigerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, gigerrors.ErrGigNotOpen):
		return http.StatusBadRequest, "gig is not open for bidding"
	case errors.Is(err, gigerrors.ErrNotGigOwner):
		return http.StatusForbidden, "not authorized for this gig"
	case errors.Is(err, gigerrors.ErrOwnGigBid):
		return http.StatusForbidden, "you cannot bid on your own gig"
	case errors.Is(err, gigerrors.ErrDuplicateBid):
		return http.StatusConflict, "you have already placed a bid on this gig"
	case errors.Is(err, gigerrors.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, gigerrors.ErrUsernameTaken):
		return http.StatusConflict, "username already taken"
	case errors.Is(err, gigerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, gigerrors.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, gigerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request details"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// HandleServiceError sends the mapped error response and logs it
func HandleServiceError(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	if ctx == nil {
		ctx = map[string]any{}
	}
	ctx["handler"] = handlerName
	ctx["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": "+message, ctx)
	} else {
		utils.Warn(handlerName+": "+message, ctx)
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
