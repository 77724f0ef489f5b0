package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter keeps one token bucket per key (client ip, email, ...).
// Buckets idle for longer than the expiration are dropped by Sweep.
type KeyedLimiter struct {
	mu             sync.Mutex
	visitors       map[string]*visitor
	rate           rate.Limit
	burst          int
	expirationTime time.Duration
	now            func() time.Time

	stop chan struct{}
	once sync.Once
}

// New creates a limiter refilling ratePerSecond tokens per second up to burst.
func New(ratePerSecond float64, burst int, expirationTime time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		visitors:       make(map[string]*visitor),
		rate:           rate.Limit(ratePerSecond),
		burst:          burst,
		expirationTime: expirationTime,
		now:            time.Now,
		stop:           make(chan struct{}),
	}
}

// PerMinute allows n requests per minute with a burst of n.
func PerMinute(n int) *KeyedLimiter {
	return New(float64(n)/60, n, time.Hour)
}

// Allow takes a token from key's bucket.
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Sweep drops buckets not used within the expiration time.
func (l *KeyedLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.expirationTime)
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
		}
	}
}

// StartSweeper runs Sweep every interval until Stop is called.
func (l *KeyedLimiter) StartSweeper(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Sweep()
			case <-l.stop:
				return
			}
		}
	}()
}

func (l *KeyedLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func (l *KeyedLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}
