package utils

import (
	"strings"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/gin-gonic/gin"
)

// Param returns a required path parameter.
func Param(ctx *gin.Context, name string) (string, error) {
	value := strings.TrimSpace(ctx.Param(name))

	if value == "" {
		return "", errs.InvalidInput("Missing " + name + " param")
	}

	return value, nil
}
