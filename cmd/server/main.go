// Package main initializes and starts the onboarding HTTP server,
// setting up configuration, logging, the database connection,
// repositories, services, handlers and routes.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/nstepanova/onboard/internal/config"
	"github.com/nstepanova/onboard/internal/db"
	"github.com/nstepanova/onboard/internal/logger"
	"github.com/nstepanova/onboard/internal/repository"
	"github.com/nstepanova/onboard/internal/server/handler/http"
	"github.com/nstepanova/onboard/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL and bring the schema up to date.
	postgresDB, err := db.InitPostgres(context.Background(), options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for users and component configuration.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	componentRepo := repository.NewPostgresComponentRepository(postgresDB)

	// Initialize business-logic services.
	userService := service.NewUserService(userRepo)
	componentService := service.NewComponentService(componentRepo)

	// Create HTTP handlers for the user and admin-config endpoints.
	userHandler := &http.UserHandler{UserService: userService, Logger: zapLogger}
	componentHandler := &http.ComponentHandler{ComponentService: componentService, Logger: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(userHandler, componentHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
