package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Evictable is the slice of the registry the evictor needs.
type Evictable interface {
	EvictIdle(ttl time.Duration) int
	Len() int
}

// EvictionWorker periodically drops room caches that nobody touched
// for longer than the TTL. The durable log is the source of truth, so
// an evicted room is rebuilt transparently on its next use; this only
// bounds the memory held by idle rooms.
type EvictionWorker struct {
	registry Evictable
	interval time.Duration
	ttl      time.Duration
	log      *slog.Logger
}

func NewEvictionWorker(registry Evictable, interval, ttl time.Duration, log *slog.Logger) *EvictionWorker {
	return &EvictionWorker{registry: registry, interval: interval, ttl: ttl, log: log}
}

func (w *EvictionWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if evicted := w.registry.EvictIdle(w.ttl); evicted > 0 {
				w.log.Debug(fmt.Sprintf("Evicted %d idle room(s), %d still cached",
					evicted, w.registry.Len()))
			}
		}
	}
}
