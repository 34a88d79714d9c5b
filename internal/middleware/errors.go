package middleware

import (
	"errors"

	"github.com/ByteStackx/collaborative-code-review-platform/internal/errs"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error string    `json:"error"`
	Code  errs.Code `json:"code"`
}

// Errors renders the last error a handler recorded with ctx.Error. Denials
// keep their message; internal failures are logged and reported generically.
func Errors(m *metrics.Metrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if len(ctx.Errors) == 0 {
			return
		}

		err := ctx.Errors.Last().Err
		code := errs.CodeOf(err)

		if m != nil {
			m.ErrorsTotal.WithLabelValues(string(code)).Inc()
		}

		message := "Internal server error"

		var appErr *errs.Error
		if code == errs.CodeInternal {
			log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("request failed")
		} else if errors.As(err, &appErr) {
			message = appErr.Message
		}

		if ctx.Writer.Written() {
			return
		}

		ctx.AbortWithStatusJSON(code.HTTPStatus(), ErrorResponse{
			Error: message,
			Code:  code,
		})
	}
}
