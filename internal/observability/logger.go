package observability

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the narrow logging surface the services depend on.
type Logger struct {
	log zerolog.Logger
}

func NewLogger() *Logger {
	level := zerolog.InfoLevel
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return &Logger{log: zerolog.New(os.Stderr).With().Timestamp().Logger()}
}

func (l *Logger) Info(msg string) {
	l.log.Info().Msg(msg)
}

func (l *Logger) Error(msg string) {
	l.log.Error().Msg(msg)
}

func (l *Logger) Debug(msg string) {
	l.log.Debug().Msg(msg)
}
