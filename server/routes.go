package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Router builds the gin engine with CORS, optional API-key auth on the
// /api group, and panic recovery. Recovery doubles as the catch-all
// for unexpected computation faults: the client gets a generic 500 and
// never a partial result.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-API-Key"},
		ExposeHeaders: []string{"Content-Length"},
		AllowMethods:  []string{"GET", "POST"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(s.requireAPIKey())

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	api.POST("/indicators", s.handleIndicators)
	api.GET("/candles", s.handleCandles)
	api.GET("/account", s.proxyHandler("account"))
	api.GET("/positions", s.proxyHandler("positions"))
	api.GET("/pricing", s.proxyHandler("pricing"))

	return r
}

// requireAPIKey rejects /api requests without the configured key. An
// empty key disables the check.
func (s *Server) requireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.APIKey == "" {
			return
		}
		if c.GetHeader("X-API-Key") == s.cfg.APIKey ||
			c.GetHeader("Authorization") == "Bearer "+s.cfg.APIKey {
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid api key"})
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Debug("request")
	}
}
