// Package http provides the bot process's small HTTP surface: a plain-text
// landing route and a liveness endpoint for process supervisors.
package http

import (
	"net/http"
	"strings"
	"time"

	"filevault_bot/platform/httpkit"
	"filevault_bot/platform/logger"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the liveness gin engine for the bot process.
func NewRouter(env string, log *logger.Logger) *gin.Engine {
	if !strings.EqualFold(env, "development") {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "File vault bot is running.")
	})

	engine.GET("/health", func(c *gin.Context) {
		httpkit.OK(c, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	return engine
}
