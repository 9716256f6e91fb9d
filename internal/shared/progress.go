package shared

import (
	"log/slog"
	"sync"
)

// NewProgressLogger returns a progress sink that logs at every tenth of
// total. Calls may come from several goroutines.
func NewProgressLogger(total int, logger *slog.Logger) func(int) {
	if logger == nil {
		logger = slog.Default()
	}
	var (
		mu   sync.Mutex
		done int
		next = 1
	)
	return func(n int) {
		mu.Lock()
		defer mu.Unlock()
		done += n
		if total <= 0 {
			return
		}
		pct := 0
		for next <= 10 && done*10 >= next*total {
			pct = next * 10
			next++
		}
		if pct > 0 {
			logger.Info("progress", "done", done, "total", total, "pct", pct)
		}
	}
}
