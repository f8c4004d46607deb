package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "go-gin-contact-board/internal/transport/http/response"
)

// RateLimit 全局令牌桶限速
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, resp.Error(resp.CodeTooManyRequests, "too many requests"))
	}
}

// RateLimitPerIP 每 IP 限速，空闲的 limiter 定期回收
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	ips := newIPLimiters(rps, burst, time.Now)
	return func(c *gin.Context) {
		if ips.get(c.ClientIP()).Allow() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, resp.Error(resp.CodeTooManyRequests, "too many requests"))
	}
}

const ipIdleTTL = 10 * time.Minute

type ipEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type ipLimiters struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	ttl       time.Duration // 0 表示不回收
	now       func() time.Time
	lastSweep time.Time
	entries   map[string]*ipEntry
}

// ttl 不短于桶回满的时间，回收后新建的桶与原桶状态一致
func newIPLimiters(rps rate.Limit, burst int, now func() time.Time) *ipLimiters {
	var ttl time.Duration
	switch {
	case rps == rate.Inf:
		ttl = ipIdleTTL
	case rps > 0:
		refill := time.Duration(float64(burst) / float64(rps) * float64(time.Second))
		ttl = max(ipIdleTTL, refill.Round(time.Millisecond))
	}
	return &ipLimiters{
		rps:       rps,
		burst:     burst,
		ttl:       ttl,
		now:       now,
		lastSweep: now(),
		entries:   make(map[string]*ipEntry),
	}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if l.ttl > 0 && now.Sub(l.lastSweep) >= l.ttl {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) >= l.ttl {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}
	e, ok := l.entries[ip]
	if !ok {
		e = &ipEntry{lim: rate.NewLimiter(l.rps, l.burst)}
		l.entries[ip] = e
	}
	e.lastSeen = now
	return e.lim
}

func (l *ipLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
