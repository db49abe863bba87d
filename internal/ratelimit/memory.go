package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter keeps per-key hit timestamps in a process-local map. State is
// lost on restart and not shared between instances.
type MemoryLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
	now    func() time.Time
}

func NewMemory(window time.Duration, max int) *MemoryLimiter {
	return &MemoryLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	valid := l.hits[key][:0]
	for _, ts := range l.hits[key] {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= l.max {
		l.hits[key] = valid
		return false, nil
	}

	l.hits[key] = append(valid, now)
	return true, nil
}

// Sweep drops keys whose every hit has aged out of the window, bounding map
// growth under churning client IPs. Intended to run on a ticker.
func (l *MemoryLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, timestamps := range l.hits {
		live := false
		for _, ts := range timestamps {
			if ts.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(l.hits, key)
		}
	}
}

// StartSweeper runs Sweep on the given interval until done is closed.
func (l *MemoryLimiter) StartSweeper(interval time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Sweep()
			case <-done:
				return
			}
		}
	}()
}
