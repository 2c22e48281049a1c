// internal/server/router.go

// Package server exposes the planning pipeline over HTTP.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/history"
	"fitcoach-backend/internal/planner"
)

// NewRouter wires all routes. store may be nil when history persistence is
// disabled; the history routes then answer 503.
func NewRouter(p *planner.Planner, store *history.Store, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	h := newHandlers(p, store, log)

	router.GET("/healthcheck", h.healthcheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/workout", h.generateWorkout)
		api.GET("/history/:userID", h.listHistory)
		api.GET("/history/:userID/recent", h.recentHistory)
		api.DELETE("/history/:userID", h.deleteHistory)
	}

	return router
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		fields := map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		}
		if c.Writer.Status() >= 500 {
			log.Error("request failed", fields)
			return
		}
		log.Info("request completed", fields)
	}
}
