package router

import (
	"fmt"
	"net/http"

	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/interfaces/api/handler"
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NotificationsPrefix is the base path for all notification routes.
const NotificationsPrefix = "/api/v1/notifications"

// Config holds the dependencies for the router.
type Config struct {
	NotificationHandler *handler.NotificationHandler
	Logger              logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost", "http://localhost:3000"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Root and health probes
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Notification Service",
			"status":  "running",
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "notification-service",
		})
	})

	// Notification routes
	g := e.Group(NotificationsPrefix)
	g.POST("/send-reminder/:id", cfg.NotificationHandler.SendReminder)
	g.POST("/send-confirmation/:id", cfg.NotificationHandler.SendConfirmation)
	g.GET("/upcoming-reminders", cfg.NotificationHandler.UpcomingReminders)
	g.GET("/scheduler/status", cfg.NotificationHandler.SchedulerStatus)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
