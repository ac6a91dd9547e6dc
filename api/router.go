package api

import (
	"github.com/gin-gonic/gin"
	"github.com/saqibullah/regreen-backend/metrics"
)

type RouterOptions struct {
	MaxUploadBytes int64
	Metrics        *metrics.Metrics
}

func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(), recovery(), cors())
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	r.GET("/health", h.Health)
	r.POST("/analyze", limitBody(opts.MaxUploadBytes), h.Analyze)
	return r
}
