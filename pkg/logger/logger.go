package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Level comes from LOG_LEVEL
// when set (trace, debug, info, warn, error); otherwise development runs
// at debug and everything else at info. Development output is the human
// console writer, production stays JSON.
func Init(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := defaultLevel(env)
	if parsed, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Logger = log.Logger.With().Str("service", "library-catalog").Logger()
}

func defaultLevel(env string) zerolog.Level {
	if env == "development" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
