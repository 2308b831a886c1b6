package server

import (
	"net/http"

	"campusms/internal/api"
	"campusms/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// @Summary      Prometheus metrics
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// @Summary      Pending notification count
// @Tags         system
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} gin.H
// @Router       /admin/notifications/queue [get]
func NotificationQueue(dispatcher *notify.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"pending": dispatcher.QueueLength(c.Request.Context()),
		})
	}
}
