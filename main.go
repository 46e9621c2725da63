package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fixitnow/config"
	"fixitnow/database"
	bookingRepo "fixitnow/database/repository/booking"
	providerRepo "fixitnow/database/repository/provider"
	"fixitnow/handlers"
	"fixitnow/middleware"
	"fixitnow/routes"
	"fixitnow/services/assignment"
	"fixitnow/services/booking"
	"fixitnow/services/geocode"
	"fixitnow/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	providers := providerRepo.NewMongoProviderRepo()

	// services.
	engine := &assignment.DefaultEngine{
		ProviderRepo: providers,
		Logger:       logger,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:         bookings,
		ProviderRepo: providers,
		Engine:       engine,
		Geocoder:     geocode.NewNominatimClient(config.AppConfig.NominatimURL),
		Cache:        utils.GetCacheClient(),
		Logger:       logger,
	}

	// handlers.
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	providerHandler := handlers.NewProviderHandler(providers)
	adminHandler := handlers.NewAdminHandler(bookings, providers)

	routes.RegisterRoutes(router, bookingHandler, providerHandler, adminHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
