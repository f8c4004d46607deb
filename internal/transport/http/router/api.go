package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-contact-board/internal/core/server"
	mdw "go-gin-contact-board/internal/transport/http/middleware"
	resp "go-gin-contact-board/internal/transport/http/response"
)

// Checker 健康检查（如 DB ping）
type Checker func(ctx context.Context) error

type Options struct {
	Mode         string
	CORSOrigins  []string
	MaxBodyBytes int64
	RPS          float64
	Burst        int
	PerIPRPS     float64
	PerIPBurst   int
	Concurrency  int64
	Timeout      time.Duration
	Health       Checker
}

func (o Options) withDefaults() Options {
	if o.RPS <= 0 {
		o.RPS = 200
	}
	if o.Burst <= 0 {
		o.Burst = 400
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 300
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	return o
}

func NewAPIEngine(l *zap.Logger, o Options, mods ...APIModule) *gin.Engine {
	o = o.withDefaults()
	r := server.NewRouter(l, server.Options{Mode: o.Mode, CORSOrigins: o.CORSOrigins})

	// 中间件
	chain := []gin.HandlerFunc{
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(o.RPS), o.Burst),
	}
	if o.PerIPRPS > 0 {
		chain = append(chain, mdw.RateLimitPerIP(rate.Limit(o.PerIPRPS), max(1, o.PerIPBurst)))
	}
	chain = append(chain,
		mdw.ConcurrencyLimit(o.Concurrency),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
		mdw.Timeout(o.Timeout),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)
	r.Use(chain...)

	// 健康检查
	r.GET("/health", health(o.Health))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "route not found"))
	})

	api := r.Group("/api")
	MountAll(api, mods...)
	return r
}

func health(check Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0, "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	}
}
