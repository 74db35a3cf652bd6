package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/genetic-risk-server/internal/domain"
)

// clientLimiters keeps one token bucket per client IP. Idle entries are
// dropped on a coarse sweep so the map stays bounded under churn.
type clientLimiters struct {
	mu      sync.Mutex
	cfg     domain.RateLimitConfig
	clients map[string]*clientLimiter
	lastGC  time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const limiterIdleTimeout = 10 * time.Minute

func newClientLimiters(cfg domain.RateLimitConfig) *clientLimiters {
	return &clientLimiters{
		cfg:     cfg,
		clients: make(map[string]*clientLimiter),
		lastGC:  time.Now(),
	}
}

func (l *clientLimiters) allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastGC) > limiterIdleTimeout {
		for ip, entry := range l.clients {
			if now.Sub(entry.lastSeen) > limiterIdleTimeout {
				delete(l.clients, ip)
			}
		}
		l.lastGC = now
	}

	entry, ok := l.clients[clientIP]
	if !ok {
		entry = &clientLimiter{
			limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst),
		}
		l.clients[clientIP] = entry
	}
	entry.lastSeen = now

	return entry.limiter.Allow()
}
