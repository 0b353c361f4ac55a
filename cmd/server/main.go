package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ravenhold/realm-api/internal/config"
	"github.com/ravenhold/realm-api/internal/database"
	"github.com/ravenhold/realm-api/internal/handler"
	"github.com/ravenhold/realm-api/internal/middleware"
	"github.com/ravenhold/realm-api/internal/repository"
	"github.com/ravenhold/realm-api/internal/service"
	"github.com/ravenhold/realm-api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Apply table definitions and unique indexes
	if err := database.ApplySchema(ctx, db); err != nil {
		slog.Error("failed to apply schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	entityRepo := repository.NewEntityRepository(db)
	regionRepo := repository.NewRegionRepository(db)
	identityRepo := repository.NewIdentityRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	entityService := service.NewEntityService(entityRepo)
	regionService := service.NewRegionService(regionRepo)
	identityService := service.NewIdentityService(identityRepo, entityRepo, regionRepo)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   100, // 100 requests per minute
		Window: time.Minute,
		Burst:  20, // Allow bursts up to 20
	})
	defer rateLimiter.Stop()

	// Initialize handlers
	userHandler := handler.NewUserHandler(authService)
	entityHandler := handler.NewEntityHandler(entityService)
	regionHandler := handler.NewRegionHandler(regionService)
	identityHandler := handler.NewIdentityHandler(identityService)
	healthHandler := handler.NewHealthHandler(db)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Check)

	// User endpoints (public)
	mux.HandleFunc("POST /v1/users", userHandler.Register)
	mux.HandleFunc("POST /v1/users/login", userHandler.Login)

	// Protected endpoints
	authMiddleware := middleware.Auth(authService)
	mux.Handle("GET /v1/users/{userId}", authMiddleware(http.HandlerFunc(userHandler.Get)))

	// Entity endpoints (replacement requires auth)
	mux.HandleFunc("POST /v1/entities", entityHandler.Create)
	mux.HandleFunc("GET /v1/entities", entityHandler.List)
	mux.HandleFunc("GET /v1/entities/{entityId}", entityHandler.Get)
	mux.Handle("PUT /v1/entities/{entityId}", authMiddleware(http.HandlerFunc(entityHandler.Update)))
	mux.HandleFunc("DELETE /v1/entities/{entityId}", entityHandler.Delete)

	// Region endpoints (single get, replacement and delete require auth)
	mux.HandleFunc("POST /v1/regions", regionHandler.Create)
	mux.HandleFunc("GET /v1/regions", regionHandler.List)
	mux.Handle("GET /v1/regions/{regionId}", authMiddleware(http.HandlerFunc(regionHandler.Get)))
	mux.Handle("PUT /v1/regions/{regionId}", authMiddleware(http.HandlerFunc(regionHandler.Update)))
	mux.Handle("DELETE /v1/regions/{regionId}", authMiddleware(http.HandlerFunc(regionHandler.Delete)))
	mux.HandleFunc("GET /v1/regions/{regionId}/entities", regionHandler.GetEntities)
	mux.HandleFunc("GET /v1/regions/{regionId}/identities", regionHandler.GetIdentities)

	// Identity endpoints (single get and replacement require auth)
	mux.HandleFunc("POST /v1/identities", identityHandler.Create)
	mux.HandleFunc("GET /v1/identities", identityHandler.List)
	mux.Handle("GET /v1/identities/{identityId}", authMiddleware(http.HandlerFunc(identityHandler.Get)))
	mux.Handle("PUT /v1/identities/{identityId}", authMiddleware(http.HandlerFunc(identityHandler.Update)))
	mux.HandleFunc("DELETE /v1/identities/{identityId}", identityHandler.Delete)

	// Fallback for unmatched routes
	mux.HandleFunc("/", handler.NotFound)

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
