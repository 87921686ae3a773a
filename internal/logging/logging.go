// Package logging configures the process-wide zerolog logger: a console
// writer on stderr and an optional rotating log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultMaxSizeMB  = 10 // rotate the log file at this size
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// Config holds logging configuration.
type Config struct {
	Level string // trace, debug, info, warn, error
	Debug bool   // forces debug level and adds caller info
	File  string // optional rotating log file
}

var (
	initOnce sync.Once
	logger   zerolog.Logger
)

// Init builds the logger once and installs it as log.Logger.
func Init(cfg Config) {
	initOnce.Do(func() {
		logger = New(cfg, os.Stderr)
		log.Logger = logger
	})
}

// Logger returns the installed logger.
func Logger() zerolog.Logger {
	return log.Logger
}

// New builds a logger writing human-readable lines to console and, when
// cfg.File is set, JSON lines to a rotating file.
func New(cfg Config, console io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		if cfg.Level != "" {
			fmt.Fprintf(os.Stderr, "invalid log level %q, defaulting to info\n", cfg.Level)
		}
		lvl = zerolog.InfoLevel
	}
	if cfg.Debug {
		lvl = zerolog.DebugLevel
	}

	writers := []io.Writer{
		zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = console
			w.TimeFormat = time.Kitchen
		}),
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    DefaultMaxSizeMB,
				MaxBackups: DefaultMaxBackups,
				MaxAge:     DefaultMaxAgeDays,
			})
		} else {
			fmt.Fprintf(os.Stderr, "cannot create log directory: %v\n", err)
		}
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).Level(lvl).With().Timestamp()
	if cfg.Debug {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}
