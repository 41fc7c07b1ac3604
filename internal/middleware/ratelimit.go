package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bookboxapp/bookbox/internal/response"
)

// RateLimiter enforces a sliding-window request cap per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	history map[string][]time.Time
	limit   int
	window  time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		history: make(map[string][]time.Time),
		limit:   limit,
		window:  window,
	}
	go rl.evictLoop()
	return rl
}

// Allow records an attempt from ip and reports whether it is within the
// window limit. Denied attempts are not recorded.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	recent := rl.history[ip][:0]
	for _, at := range rl.history[ip] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	if len(recent) >= rl.limit {
		rl.history[ip] = recent
		return false
	}

	rl.history[ip] = append(recent, now)
	return true
}

// evictLoop drops IPs whose entries have all aged out, so the map does not
// grow without bound.
func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-2 * rl.window)
		for ip, attempts := range rl.history {
			stale := true
			for _, at := range attempts {
				if at.After(cutoff) {
					stale = false
					break
				}
			}
			if stale {
				delete(rl.history, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimitAuth limits credential endpoints to 5 attempts per 15 minutes
// per client IP.
func RateLimitAuth() func(http.HandlerFunc) http.HandlerFunc {
	limiter := NewRateLimiter(5, 15*time.Minute)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r)
			if !limiter.Allow(ip) {
				slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				response.Error(w, http.StatusTooManyRequests, "too many requests, please try again later")
				return
			}
			next(w, r)
		}
	}
}

// getClientIP resolves the originating client address, trusting proxy
// headers when present.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
