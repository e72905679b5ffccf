package logger

import (
	"log"
	"log/slog"
)

// New returns a *log.Logger that forwards every line to base at the given
// level, tagged with the component name. It serves libraries that only
// accept a Printf-style logger.
func New(base *slog.Logger, component string, level slog.Level) *log.Logger {
	if base == nil {
		base = slog.Default()
	}
	return slog.NewLogLogger(base.With("component", component).Handler(), level)
}
