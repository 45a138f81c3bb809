package errors_utils

import (
	"errors"

	"vendors-backend/internal/util/logger"

	"github.com/gin-gonic/gin"
)

// RespondWithError renders err as {"code", "error"}. Wrapped causes are
// logged and never sent to the caller.
func RespondWithError(ctx *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		logger.GetLogger().Error(
			"unhandled error",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)

		ctx.JSON(KindInternal.Status(), gin.H{
			"code":  KindInternal,
			"error": "Internal server error",
		})
		return
	}

	if appErr.Err != nil {
		logger.GetLogger().Error(
			appErr.Message,
			"kind", appErr.Kind,
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", appErr.Err,
		)
	}

	ctx.JSON(appErr.Status(), gin.H{
		"code":  appErr.Kind,
		"error": appErr.Message,
	})
}
