package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	once          sync.Once
)

// Init configures the default logger with a timestamped JSON writer on
// os.Stdout. The level string follows zerolog conventions ("debug", "info",
// "warn", "error"); unknown values fall back to info. Only the first call
// takes effect.
func Init(level string) {
	once.Do(func() {
		lvl, err := zerolog.ParseLevel(level)
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(lvl)
		defaultLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	})
}

// Get returns the default logger, initializing it at info level if Init was
// never called.
func Get() zerolog.Logger {
	Init("info")
	return defaultLogger
}
