package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/garage-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/garage-api/internal/api/middleware"
	"github.com/vietanh2810/garage-api/internal/domain"
)

var errNotAuthenticated = errors.New("user is not authenticated")

// getUserFromContext resolves the authenticated user set by the JWT
// middleware into a full domain user.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, response.ErrUnauthorized(errNotAuthenticated)
	}

	userID, ok := value.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errNotAuthenticated)
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		return domain.User{}, response.ErrUnauthorized(errNotAuthenticated)
	}

	return user, nil
}
