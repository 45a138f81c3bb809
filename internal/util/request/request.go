package request_utils

import (
	"strconv"
	"strings"

	errors_utils "vendors-backend/internal/util/errors"

	"github.com/gin-gonic/gin"
)

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(ctx *gin.Context, name string, message string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(ctx.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors_utils.InvalidID(message)
	}

	return id, nil
}

// QueryInt returns the integer query value, or fallback when the value
// is missing or not a number.
func QueryInt(ctx *gin.Context, name string, fallback int) int {
	raw := strings.TrimSpace(ctx.Query(name))
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}

func Clamp(value, minValue, maxValue int) int {
	return min(max(value, minValue), maxValue)
}
