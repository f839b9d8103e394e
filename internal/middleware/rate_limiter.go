package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/fakhrymubarak/eventsphere-api/internal/model"
)

// Limits configures a RateLimiter. Rates are requests per minute.
type Limits struct {
	GlobalPerMinute float64
	GlobalBurst     int
	RoutePerMinute  float64
	RouteBurst      int
	CleanupAfter    time.Duration
}

// visitor holds the rate limiter and last seen time for one bucket.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a per-IP limit and a per-IP-per-route limit.
type RateLimiter struct {
	limits Limits

	muGlobal sync.Mutex
	// global maps IP addresses to their visitor.
	global map[string]*visitor
	muRoute  sync.Mutex
	// routes maps IP -> request path -> visitor.
	routes map[string]map[string]*visitor
}

func NewRateLimiter(limits Limits) *RateLimiter {
	if limits.CleanupAfter <= 0 {
		limits.CleanupAfter = 3 * time.Minute
	}
	return &RateLimiter{
		limits: limits,
		global: make(map[string]*visitor),
		routes: make(map[string]map[string]*visitor),
	}
}

func perMinute(n float64) rate.Limit {
	return rate.Limit(n / 60.0)
}

// getGlobalLimiter returns the limiter for ip, creating one if it does not exist.
func (rl *RateLimiter) getGlobalLimiter(ip string) *rate.Limiter {
	rl.muGlobal.Lock()
	defer rl.muGlobal.Unlock()
	v, exists := rl.global[ip]
	if !exists {
		limiter := rate.NewLimiter(perMinute(rl.limits.GlobalPerMinute), rl.limits.GlobalBurst)
		rl.global[ip] = &visitor{limiter, time.Now()}
		return limiter
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// getRouteLimiter returns the limiter for ip on route, creating one if it does not exist.
func (rl *RateLimiter) getRouteLimiter(ip, route string) *rate.Limiter {
	rl.muRoute.Lock()
	defer rl.muRoute.Unlock()
	if _, ok := rl.routes[ip]; !ok {
		rl.routes[ip] = make(map[string]*visitor)
	}
	v, exists := rl.routes[ip][route]
	if !exists {
		limiter := rate.NewLimiter(perMinute(rl.limits.RoutePerMinute), rl.limits.RouteBurst)
		rl.routes[ip][route] = &visitor{limiter, time.Now()}
		return limiter
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Cleanup removes buckets that have not been seen for CleanupAfter.
func (rl *RateLimiter) Cleanup() {
	rl.muGlobal.Lock()
	for ip, v := range rl.global {
		if time.Since(v.lastSeen) > rl.limits.CleanupAfter {
			delete(rl.global, ip)
		}
	}
	rl.muGlobal.Unlock()

	rl.muRoute.Lock()
	for ip, routeMap := range rl.routes {
		for route, v := range routeMap {
			if time.Since(v.lastSeen) > rl.limits.CleanupAfter {
				delete(routeMap, route)
			}
		}
		if len(routeMap) == 0 {
			delete(rl.routes, ip)
		}
	}
	rl.muRoute.Unlock()
}

// StartCleanup runs Cleanup every minute until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup()
			}
		}
	}()
}

// getIP extracts the client's IP address from the HTTP request, considering X-Forwarded-For headers.
func getIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr // fallback
	}
	return ip
}

func writeLimited(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	resp := model.Fail[any](msg)
	resp.Message = "Too Many Requests"
	_ = json.NewEncoder(w).Encode(resp)
}

// Middleware rejects requests over either limit with 429 and an error envelope.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := getIP(r)
		if !rl.getGlobalLimiter(ip).Allow() {
			writeLimited(w, fmt.Sprintf("Rate limit exceeded: max %.0f requests per minute per IP", rl.limits.GlobalPerMinute))
			return
		}
		if !rl.getRouteLimiter(ip, r.URL.Path).Allow() {
			writeLimited(w, fmt.Sprintf("Rate limit exceeded: max %.0f requests per minute per endpoint per IP", rl.limits.RoutePerMinute))
			return
		}
		next.ServeHTTP(w, r)
	})
}
