package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/quotepulse/internal/logger"
)

// RequestLogger is a Gin middleware that logs one structured line per request.
//
// Fields: request_id, method, path, ticker (when queried), status,
// latency_ms and client_ip. 5xx responses log at error level and 4xx at warn.
//
// Example log output:
//
//	{"level":"info","request_id":"123e4567-...","method":"GET","path":"/api/v1/summary","ticker":"MSFT","status":200,"latency_ms":15,"message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		var ev *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			ev = logger.L().Error()
		case status >= http.StatusBadRequest:
			ev = logger.L().Warn()
		default:
			ev = logger.L().Info()
		}
		if t := c.Query("ticker"); t != "" {
			ev = ev.Str("ticker", t)
		}
		ev.Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// rateLimiter is a fixed-window counter per client IP.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// allow records a request from ip and reports whether it is within the limit.
// Idle entries are pruned on the way so the map does not grow without bound.
func (rl *rateLimiter) allow(ip string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) > rl.window {
		if len(rl.clients) > 1024 {
			for k, v := range rl.clients {
				if now.Sub(v.windowStart) > rl.window {
					delete(rl.clients, k)
				}
			}
		}
		cl = &client{windowStart: now}
		rl.clients[ip] = cl
	}
	cl.count++
	return cl.count <= rl.limit
}

// RateLimiter is an in-memory middleware allowing perMinute requests per
// client IP per minute. Exceeding the limit returns 429 Too Many Requests.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RateLimiter(60))
func RateLimiter(perMinute int) gin.HandlerFunc {
	return rateLimit(newRateLimiter(perMinute, time.Minute))
}

func rateLimit(rl *rateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			AbortWithError(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
