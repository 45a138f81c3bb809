package users_middleware

import (
	"strings"

	users_models "vendors-backend/internal/features/users/models"
	errors_utils "vendors-backend/internal/util/errors"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

type TokenUserResolver interface {
	GetUserFromToken(token string) (*users_models.User, error)
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(resolver TokenUserResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := extractBearerToken(ctx)
		if !ok {
			errors_utils.RespondWithError(ctx, errors_utils.Unauthorized("Authorization header is required"))
			ctx.Abort()
			return
		}

		user, err := resolver.GetUserFromToken(token)
		if err != nil {
			errors_utils.RespondWithError(ctx, errors_utils.Unauthorized("Invalid token"))
			ctx.Abort()
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

// OptionalAuthMiddleware lets anonymous requests through but still
// rejects a token that is present and invalid.
func OptionalAuthMiddleware(resolver TokenUserResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := extractBearerToken(ctx)
		if !ok {
			ctx.Next()
			return
		}

		user, err := resolver.GetUserFromToken(token)
		if err != nil {
			errors_utils.RespondWithError(ctx, errors_utils.Unauthorized("Invalid token"))
			ctx.Abort()
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*users_models.User)
	return user, ok && user != nil
}

// GetUserIDFromContext returns 0 for anonymous callers.
func GetUserIDFromContext(ctx *gin.Context) int64 {
	user, ok := GetUserFromContext(ctx)
	if !ok {
		return 0
	}

	return user.ID
}

func extractBearerToken(ctx *gin.Context) (string, bool) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return "", false
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		token = header
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
