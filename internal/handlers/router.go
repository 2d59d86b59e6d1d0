package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/services"
)

// NewRouter builds the Gin engine serving the lookup API.
func NewRouter(svc services.LookupService, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/weather", WeatherHandler(svc))
		api.GET("/history", HistoryHandler(svc))
	}
	return router
}
