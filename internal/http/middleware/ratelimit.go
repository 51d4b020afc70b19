package middleware

import (
	"context"
	"sync"
	"time"
)

// counter increments a fixed-window hit count for key.
type counter interface {
	incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type clientInfo struct {
	last  time.Time
	count int
}

// windowCounter is a fixed-window counter kept in process memory. It backs
// the limiters when Redis is not configured.
type windowCounter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
	now     func() time.Time
}

func newWindowCounter() *windowCounter {
	return &windowCounter{clients: make(map[string]*clientInfo), now: time.Now}
}

// incr counts one hit for key and returns the count within the current window.
func (w *windowCounter) incr(_ context.Context, key string, window time.Duration) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	ci, ok := w.clients[key]
	if !ok || now.Sub(ci.last) > window {
		w.clients[key] = &clientInfo{last: now, count: 1}
		w.sweep(now, window)
		return 1, nil
	}
	ci.count++
	return int64(ci.count), nil
}

// sweep drops expired windows so the map doesn't grow with every IP seen.
func (w *windowCounter) sweep(now time.Time, window time.Duration) {
	if len(w.clients) < 1024 {
		return
	}
	for k, ci := range w.clients {
		if now.Sub(ci.last) > window {
			delete(w.clients, k)
		}
	}
}

func (w *windowCounter) keys() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.clients))
	for k := range w.clients {
		out = append(out, k)
	}
	return out
}
