package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	base        zerolog.Logger
	initialized bool
	lazyInit    sync.Once
)

// Init configures the global JSON logger writing to stdout.
//
// Environment variables (optional):
//   - LOG_LEVEL: debug|info|warn|error (default: info)
//   - LOG_PRETTY: true|false (default: false)
func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter configures the global logger to write to out.
// Report mode passes os.Stderr so that stdout only carries report rows.
func InitWithWriter(out io.Writer) {
	level := parseLevel(getenv("LOG_LEVEL", "info"))
	pretty := strings.EqualFold(getenv("LOG_PRETTY", "false"), "true")

	zerolog.TimeFieldFormat = time.RFC3339Nano
	w := out
	if pretty {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	base = zerolog.New(w).With().Timestamp().Str("service", "quotepulse").Logger().Level(level)
	initialized = true
}

// L returns the global logger. Call Init() once on startup; otherwise the
// first call initializes it with defaults. Safe for concurrent first use.
func L() *zerolog.Logger {
	lazyInit.Do(func() {
		if !initialized {
			Init()
		}
	})
	return &base
}

// Ticker returns a child logger tagged with the instrument symbol.
func Ticker(symbol string) zerolog.Logger {
	return L().With().Str("ticker", symbol).Logger()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
