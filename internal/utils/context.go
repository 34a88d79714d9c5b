package utils

import (
	"github.com/ByteStackx/collaborative-code-review-platform/internal/auth"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/gin-gonic/gin"
)

func GetIdentity(ctx *gin.Context) (auth.Identity, error) {
	value, exists := ctx.Get(types.ContextIdentityKey)

	if !exists {
		return auth.Identity{}, errs.Unauthenticated("User not authenticated")
	}

	identity, ok := value.(auth.Identity)

	if !ok {
		return auth.Identity{}, errs.Unauthenticated("Invalid identity in context")
	}

	return identity, nil
}
