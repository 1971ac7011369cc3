package observability

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog behind the small interface the service layer depends on.
type Logger struct {
	log zerolog.Logger
}

func NewLogger() *Logger {
	return &Logger{log: zerolog.New(os.Stdout).With().Timestamp().Logger()}
}

func (l *Logger) Info(msg string) {
	l.log.Info().Msg(msg)
}

func (l *Logger) Error(msg string) {
	l.log.Error().Msg(msg)
}
