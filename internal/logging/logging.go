package logging

import (
	"io"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global zerolog logger and gin's writers at a console
// writer on stdout.
func Setup(level string) {
	SetupWriter(level, os.Stdout)
}

func SetupWriter(level string, out io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(ParseLevel(level))

	console := zerolog.ConsoleWriter{Out: out}
	log.Logger = log.Output(console)
	gin.DefaultWriter = console
	gin.DefaultErrorWriter = console
}

// ParseLevel falls back to info for unknown values.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
