package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/auth"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/events"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/policy"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/services"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/store"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report binding failures with the JSON field name.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	}
}

type Options struct {
	Store       *store.Store
	Rules       *policy.Rules
	Tokens      *auth.Tokens
	Hub         *events.Hub
	Notifier    *services.Notifier
	DefaultRole types.Role
	Origins     []string
}

// Handler serves the HTTP API. Every route resolves its resource through
// the policy rules before touching the store.
type Handler struct {
	store       *store.Store
	rules       *policy.Rules
	tokens      *auth.Tokens
	hub         *events.Hub
	notifier    *services.Notifier
	defaultRole types.Role
	origins     []string
}

func New(opts Options) *Handler {
	if opts.DefaultRole == "" {
		opts.DefaultRole = types.RoleSubmitter
	}
	if opts.Hub == nil {
		opts.Hub = events.NewHub()
	}

	return &Handler{
		store:       opts.Store,
		rules:       opts.Rules,
		tokens:      opts.Tokens,
		hub:         opts.Hub,
		notifier:    opts.Notifier,
		defaultRole: opts.DefaultRole,
		origins:     opts.Origins,
	}
}

func bindJSON(ctx *gin.Context, v interface{}) error {
	if err := ctx.ShouldBindJSON(v); err != nil {
		return errs.Wrap(errs.CodeInvalidInput, bindingMessage(err), err)
	}
	return nil
}

func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid http(s) URL", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// fail records err for the error middleware.
func fail(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
}
