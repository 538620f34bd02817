package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// MsgTooManyAttempts is returned once a client exceeds the window budget.
const MsgTooManyAttempts = "too many attempts, please try again later"

// attemptStore keeps per-IP attempt timestamps inside a sliding window.
type attemptStore struct {
	mu     sync.Mutex
	window time.Duration
	hits   map[string][]time.Time
}

func newAttemptStore(window time.Duration) *attemptStore {
	return &attemptStore{window: window, hits: make(map[string][]time.Time)}
}

// allow records an attempt for ip unless max attempts were already seen in the window.
func (s *attemptStore) allow(ip string, max int, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := prune(s.hits[ip], now.Add(-s.window))
	if len(ts) >= max {
		s.hits[ip] = ts
		return false
	}
	s.hits[ip] = append(ts, now)
	return true
}

// sweep drops IPs whose attempts all fell out of the window.
func (s *attemptStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.window)
	for ip, ts := range s.hits {
		ts = prune(ts, cutoff)
		if len(ts) == 0 {
			delete(s.hits, ip)
		} else {
			s.hits[ip] = ts
		}
	}
}

func (s *attemptStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hits)
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// LoginRateLimit limits each client IP to maxAttempts requests per window and
// answers 429 beyond that. The cleanup goroutine stops when ctx is done.
func LoginRateLimit(ctx context.Context, maxAttempts int, window time.Duration) gin.HandlerFunc {
	store := newAttemptStore(window)

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				store.sweep(now)
			}
		}
	}()

	return func(c *gin.Context) {
		if !store.allow(c.ClientIP(), maxAttempts, time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"msg": MsgTooManyAttempts})
			return
		}
		c.Next()
	}
}
