package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Domenick1991/carbooking/config"
	"github.com/Domenick1991/carbooking/internal/service/booking"
	"github.com/Domenick1991/carbooking/internal/stub"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the HTTP surface: /healthz, the booking routes under
// /api/v1/bookings (behind basic auth when accounts are configured) and the
// open /stub provider routes when enabled.
func NewRouter(cfg config.HTTPConfig, service booking.BookingUseCase, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	if len(cfg.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.AllowOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders: []string{"Content-Length", "Content-Type"},
			MaxAge:        12 * time.Hour,
		}))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.EnableStubs {
		stub.NewHandler(stub.NewLicenseRegistry(time.Now()), stub.DefaultRates(), logger).Register(router)
	}

	group := router.Group("/api/v1/bookings")
	if len(cfg.Accounts) > 0 {
		group.Use(BasicAuth(cfg.Accounts))
	} else {
		logger.Warn("booking routes are open: no http.accounts configured")
	}
	NewBookingHandler(service, logger).Register(group)

	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"principal", c.GetString(principalKey),
		)
	}
}
