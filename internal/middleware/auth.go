package middleware

import (
	"strings"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/auth"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/gin-gonic/gin"
)

// IdentityResolver turns a bearer token into an identity.
type IdentityResolver interface {
	Resolve(token string) (auth.Identity, error)
}

// Authenticate resolves the bearer credential and stores the identity on the
// context. The stored role is whatever the token carries; it is not
// re-checked against the user record.
func Authenticate(resolver IdentityResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			abort(ctx, errs.Unauthenticated("Authorization token is required"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(ctx, errs.Unauthenticated("Authorization header format must be Bearer {token}"))
			return
		}

		identity, err := resolver.Resolve(strings.TrimSpace(parts[1]))

		if err != nil {
			abort(ctx, err)
			return
		}

		ctx.Set(types.ContextIdentityKey, identity)
		ctx.Next()
	}
}

// RequireRole rejects identities whose role is not listed. It runs before
// the handler reads the body, so a disallowed role is reported ahead of any
// validation error.
func RequireRole(roles ...types.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextIdentityKey)
		identity, ok := value.(auth.Identity)

		if !exists || !ok {
			abort(ctx, errs.Unauthenticated("Unauthorized"))
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				ctx.Next()
				return
			}
		}

		abort(ctx, errs.Forbidden("Forbidden"))
	}
}

func abort(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	ctx.Abort()
}
