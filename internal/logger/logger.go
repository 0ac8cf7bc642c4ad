// Package logger configures the global zerolog logger from command line options.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a go-flags option group embedded in every command.
type Logger struct {
	Level   string `long:"log-level"    env:"LOG_LEVEL"    description:"Log level"  choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	Format  string `long:"log-format"   env:"LOG_FORMAT"   description:"Log format" choice:"console" choice:"json" default:"console"`
	NoColor bool   `long:"log-no-color" env:"LOG_NO_COLOR" description:"Disable colored console output"`
}

// Setup installs the global logger writing to stderr, keeping stdout for documents.
func (l Logger) Setup() {
	log.Logger = l.New(os.Stderr)
	zerolog.SetGlobalLevel(l.level())
}

// New builds a logger writing to w.
func (l Logger) New(w io.Writer) zerolog.Logger {
	if l.Format != "json" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    l.NoColor,
			TimeFormat: time.TimeOnly,
		}
	}

	return zerolog.New(w).Level(l.level()).With().Timestamp().Logger()
}

func (l Logger) level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
