package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"edudash/internal/auth"
	"edudash/internal/cache"
	"edudash/internal/config"
	"edudash/internal/data"
	"edudash/internal/handler"
	"edudash/internal/logger"
	"edudash/internal/middleware"
	"edudash/internal/service"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Pre-flight Checks ---
	// Missing secrets degrade to development behavior instead of refusing to
	// start; a dashboard that cannot come up helps nobody.
	if cfg.Session.Secret == "" {
		log.Warn("No session secret configured. Using a default for development only.")
	}
	if cfg.DB.DSN == "" {
		log.Warn("No database configured. Zone documents will persist to the local file only.")
	}
	if cfg.NormalizedSameSite() == "none" && !cfg.Cookie.Secure {
		log.Warn("cookie.samesite=none requires secure cookies. Forcing Secure.")
	}

	// --- Database Initialization and Migration ---
	var zoneStore service.ZoneStore
	if cfg.DB.DSN != "" {
		if cfg.DB.Driver == "mysql" {
			log.Info("Applying database migrations...")
			if err := data.ApplyMigrations(cfg.DB.DSN, "migrations"); err != nil {
				log.Fatal(err, "Failed to apply migrations")
			}
			log.Info("Migrations applied successfully.")
		}

		log.Info("Connecting to the database...")
		db, err := data.NewDB(cfg.DB.Driver, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err, "Failed to connect to database")
		}
		defer db.Close()
		log.Info("Database connection successful.")

		zoneStore = data.NewZoneRepository(db, cfg.DB.Table)
	}

	// --- Cache Initialization ---
	log.Info("Initializing SQLite cache...")
	zoneCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer zoneCache.Close()
	log.Info("Cache initialized.")

	// --- Credential and Session Setup ---
	roster := auth.LoadCredentials(cfg.Auth, cfg.IsProduction())
	if len(roster) == 0 {
		log.Warn("No developer credentials configured. Login will answer 503.")
	} else if !hasConfiguredCredentials(cfg.Auth) {
		log.Warn("No developer credentials configured. Using fallback dev credentials.")
	}
	sessions := auth.NewSessions(cfg.Session.Secret, cfg.SessionLifetime())

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	fileStore := data.NewFileStore(cfg.Storage.File)
	zoneService := service.NewZoneService(zoneStore, fileStore, zoneCache, cfg.Zone.Key, log)

	cookie := handler.CookieSettings{
		SameSite: handler.ParseSameSite(cfg.NormalizedSameSite()),
		Secure:   cfg.CookieSecure(),
		MaxAge:   cfg.SessionLifetime(),
	}
	authHandler := handler.NewAuthHandler(sessions, roster, cookie)
	zoneHandler := handler.NewZoneHandler(zoneService)

	sessionMiddleware := middleware.Session(sessions)
	errorMiddleware := middleware.Error(log)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(authHandler, zoneHandler, sessionMiddleware, errorMiddleware, cfg.CORS.Origins)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "Could not start HTTP server")
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}

// hasConfiguredCredentials reports whether any credential pair was supplied
// through configuration, as opposed to the fallback roster being in effect.
func hasConfiguredCredentials(cfg config.AuthConfig) bool {
	pairs := [][2]string{
		{cfg.User1, cfg.Pass1},
		{cfg.User2, cfg.Pass2},
		{cfg.User3, cfg.Pass3},
	}
	for _, pair := range pairs {
		if strings.TrimSpace(pair[0]) != "" && strings.TrimSpace(pair[1]) != "" {
			return true
		}
	}
	return false
}
