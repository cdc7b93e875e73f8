package icons

import (
	"log/slog"
	"sync/atomic"
)

var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(slog.New(slog.DiscardHandler))
}

// SetLogger sets the logger used for swallowed encode failures and badge
// lookups. A nil logger discards output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	pkgLogger.Store(l.With("component", "icons"))
}

func logger() *slog.Logger { return pkgLogger.Load() }
