package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
)

// limiter is a fixed-window per-IP request counter. One instance per
// protected surface (login, general API); all instances share a single
// purge goroutine via the registry below.
type limiter struct {
	name    string
	limit   int
	window  time.Duration
	message string

	mu      sync.Mutex
	windows map[string]*ipWindow
}

type ipWindow struct {
	count int
	until time.Time
}

var (
	registryMu sync.Mutex
	registry   []*limiter
)

func newLimiter(name string, limit int, window time.Duration, message string) *limiter {
	l := &limiter{
		name:    name,
		limit:   limit,
		window:  window,
		message: message,
		windows: make(map[string]*ipWindow),
	}
	registryMu.Lock()
	registry = append(registry, l)
	registryMu.Unlock()
	return l
}

// allow counts one request from ip and reports whether it is still
// inside the limit, along with the instant the current window resets.
func (l *limiter) allow(ip string, now time.Time) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[ip]
	if !ok || now.After(w.until) {
		w = &ipWindow{until: now.Add(l.window)}
		l.windows[ip] = w
	}
	w.count++
	return w.count <= l.limit, w.until
}

func (l *limiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, resetAt := l.allow(c.ClientIP(), time.Now())
		if !ok {
			c.Header("Retry-After", resetAt.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

// purge drops windows that already expired so IPs that never return do
// not accumulate. Returns how many entries were removed.
func (l *limiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, w := range l.windows {
		if now.After(w.until) {
			delete(l.windows, ip)
			removed++
		}
	}
	return removed
}

var loginLimiter = newLimiter("login", 20, time.Minute,
	"Muitas tentativas de login. Tente novamente em 1 minuto.")

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return loginLimiter.handler()
}

// RateLimiter returns a fixed-window limiter of limit requests per
// window per IP, for the general API surface.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newLimiter("api", limit, window,
		"Muitas solicitações. Tente novamente em instantes.").handler()
}

const purgeInterval = 5 * time.Minute

func init() {
	go purgeLoop()
}

func purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		registryMu.Lock()
		limiters := make([]*limiter, len(registry))
		copy(limiters, registry)
		registryMu.Unlock()

		for _, l := range limiters {
			if removed := l.purge(now); removed > 0 {
				log.Debug().
					Str("limiter", l.name).
					Int("entries_purged", removed).
					Msg("rate limiter windows purged")
			}
		}
	}
}
