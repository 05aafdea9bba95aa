// Package logging provides the shared zerolog logger for the service.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = newLogger("info", "json", os.Stderr)
)

// Init reconfigures the global logger. Level is one of debug, info, warn,
// error; format is json or console. Unknown values fall back to the defaults.
func Init(level, format string) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(level, format, os.Stderr)
}

func newLogger(level, format string, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if strings.EqualFold(strings.TrimSpace(format), "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Debug() *zerolog.Event { l := logger(); return l.Debug() }

func Info() *zerolog.Event { l := logger(); return l.Info() }

func Warn() *zerolog.Event { l := logger(); return l.Warn() }

func Error() *zerolog.Event { l := logger(); return l.Error() }

func Fatal() *zerolog.Event { l := logger(); return l.Fatal() }
