package dashboard

import (
	"strings"

	"filevault_bot/platform/httpkit"
	"filevault_bot/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RouterConfig is the configuration slice the dashboard router needs.
type RouterConfig interface {
	Config
	GetCORSOrigins() []string
}

// NewRouter builds the dashboard gin engine.
func NewRouter(cfg RouterConfig, env string, log *logger.Logger) *gin.Engine {
	if !strings.EqualFold(env, "development") {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(httpkit.SecurityHeaders())

	corsCfg := cors.DefaultConfig()
	origins := cfg.GetCORSOrigins()
	if len(origins) == 1 && origins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	engine.Use(cors.New(corsCfg))

	svc := New(cfg, log)
	h := NewHandler(svc)

	engine.GET("/", h.Dashboard)
	engine.GET("/health", h.Health)

	api := engine.Group("/api")
	limiter := httpkit.NewIPRateLimiter(rate.Limit(5), 10, log)
	api.Use(limiter.RateLimit())
	api.GET("/stats", h.APIStats)
	api.GET("/files", h.APIFiles)

	return engine
}
