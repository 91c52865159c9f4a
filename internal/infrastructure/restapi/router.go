package restapi

import (
	"time"

	"pocket_wallet/internal/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter configures the Gin router with CORS, logging, metrics and all
// wallet routes. The extension popup talks to this server from its own
// origin, so CORS stays wide open.
func SetupRouter(handler *WalletHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(zapLoggerMiddleware(logger))
	router.Use(gin.Recovery())

	// Legacy flat routes the popup already uses.
	router.GET("/getTokens", handler.GetTokensHandler)
	router.GET("/logo", handler.GetLogoHandler)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/chains", handler.GetChainsHandler)
		v1.GET("/gas", handler.EstimateFeeHandler)

		v1.POST("/session", handler.OpenSessionHandler)
		v1.POST("/session/resume", handler.ResumeSessionHandler)
		v1.DELETE("/session", handler.CloseSessionHandler)
		v1.POST("/session/chain", handler.SelectChainHandler)
		v1.POST("/session/refresh", handler.RefreshHandler)
		v1.GET("/session/snapshot", handler.SnapshotHandler)
		v1.POST("/send", handler.SendHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// zapLoggerMiddleware logs each request through zap and feeds the request
// metrics.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	requestLogger := logger.Named("HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		metrics.HTTPRequestsTotal.WithLabelValues(route, statusLabel(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		requestLogger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed))
	}
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
