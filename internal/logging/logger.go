package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger. STUDIO_LOG_LEVEL selects the level
// (debug, info, warn, error); unset or unparseable values fall back to info.
func Init() {
	level, err := zerolog.ParseLevel(os.Getenv("STUDIO_LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
