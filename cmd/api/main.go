package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	// Application Layer
	appService "github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/application/service"

	// Infrastructure Layer
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/infrastructure/database/sqlite"
	emailClient "github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/infrastructure/email"
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/infrastructure/scheduler"

	// Interfaces Layer
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/interfaces/api/handler"
	"github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/interfaces/api/router"

	// Packages
	appLogger "github.com/CourtMate-RSO/Courtmate-Notifications-Service/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
)

func gracefulShutdown(apiServer *http.Server, schedulerService appService.SchedulerService, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the scheduler first so no new scan cycle starts mid-shutdown
	log.Println("Stopping scheduler...")
	schedulerService.Stop()
	log.Println("Scheduler stopped.")

	// Close database connection
	log.Println("Closing database connection...")
	if err := sqlite.CloseDB(); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("Database connection closed.")
	}

	// Shutdown HTTP server
	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

// durationEnv reads a duration environment variable, falling back to def.
func durationEnv(appLog appLogger.Logger, key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		appLog.Warn(fmt.Sprintf("Invalid %s value %q, defaulting to %s", key, raw, def))
		return def
	}
	return d
}

func main() {
	// --- Initialization ---
	appLog := appLogger.New()
	appLog.Info("Logger initialized.")

	// Load Environment Variables (using autoload)
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080" // Default port
		appLog.Warn("PORT environment variable not set, defaulting to 8080")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		appLog.Error("Invalid PORT environment variable", err)
		os.Exit(1)
	}

	// Reminder policy: lead time before the reservation start, the window
	// tolerance around it, and how often the scan runs. The tolerance must be
	// at least half the scan interval or consecutive windows leave a gap.
	leadTime := durationEnv(appLog, "REMINDER_LEAD_TIME", appService.DefaultLeadTime)
	tolerance := durationEnv(appLog, "REMINDER_TOLERANCE", appService.DefaultTolerance)
	scanInterval := durationEnv(appLog, "REMINDER_SCAN_INTERVAL", appService.DefaultScanInterval)
	if tolerance < scanInterval/2 {
		appLog.Warn(fmt.Sprintf("REMINDER_TOLERANCE %s is less than half the scan interval %s; reservations on scan boundaries may be missed", tolerance, scanInterval))
	}

	// --- Infrastructure ---
	db := sqlite.NewDB()
	reservationRepo := sqlite.NewReservationRepository(db)
	appLog.Info("Database and repositories initialized.")

	mailer := emailClient.NewClient(appLog)
	cronScheduler := scheduler.NewScheduler(appLog)

	// --- Application Services ---
	notificationSvc := appService.NewNotificationService(
		reservationRepo,
		mailer,
		appService.ReminderPolicy{LeadTime: leadTime, Tolerance: tolerance},
		appLog,
	)
	schedulerSvc := appService.NewSchedulerService(cronScheduler, notificationSvc, scanInterval, appLog)
	appLog.Info("Application services initialized.")

	// --- Start Recurring Scan ---
	if err := schedulerSvc.Start(); err != nil {
		appLog.Error("Failed to start reminder scan job", err)
		os.Exit(1)
	}
	appLog.Info(fmt.Sprintf("Reminder scan running every %s (lead %s, tolerance %s).", scanInterval, leadTime, tolerance))

	// --- API Handlers ---
	notificationHandler := handler.NewNotificationHandler(notificationSvc, schedulerSvc, appLog)
	appLog.Info("API handlers initialized.")

	// --- Router ---
	routerCfg := &router.Config{
		NotificationHandler: notificationHandler,
		Logger:              appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, schedulerSvc, done) // Pass scheduler service for stopping

	appLog.Info(fmt.Sprintf("Server starting on port %d", port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
