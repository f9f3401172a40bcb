// Package clog builds the zerolog.Logger every component threads
// through constructor injection, the way
// toffguy77-arbitr/internal/infra/log/log.go does for its own services.
package clog

import (
	"os"

	"github.com/leonardoevi/Graph-coloring/internal/config"
	"github.com/rs/zerolog"
)

// Logger is the type every package accepts; re-exported so callers don't
// need to import zerolog directly just to pass a logger around.
type Logger = zerolog.Logger

// New builds a Logger from cfg.Logging: pretty console output in dev,
// structured JSON otherwise, with the configured minimum level (falling
// back to info on an unparseable one).
func New(cfg config.Config) Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	var l zerolog.Logger
	if cfg.Logging.Pretty {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	} else {
		l = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return l.Level(level)
}
