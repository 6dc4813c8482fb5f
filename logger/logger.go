// Package logger hands out zerolog loggers tagged with the component
// they belong to. The aggregation hot path never logs; only lifecycle
// components (arena eviction, checkpointing, window setup) do.
package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu    sync.RWMutex
	level = zerolog.InfoLevel
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// SetLevel adjusts the level applied to loggers handed out after the
// call.
func SetLevel(l zerolog.Level) {
	mu.Lock()
	level = l
	mu.Unlock()
}

// Get returns a logger tagged with the given component name.
func Get(component string) zerolog.Logger {
	mu.RLock()
	l := level
	mu.RUnlock()
	return zerolog.New(os.Stderr).Level(l).With().
		Timestamp().
		Str("component", component).
		Logger()
}
