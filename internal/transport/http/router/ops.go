package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-gin-contact-board/internal/core/server"
)

// NewOpsEngine 运维端口：/health + /metrics，不对外暴露
func NewOpsEngine(l *zap.Logger, check Checker) *gin.Engine {
	r := server.NewRouter(l, server.Options{})
	r.GET("/health", health(check))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
