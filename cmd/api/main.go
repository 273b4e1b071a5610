// Package main is the entrypoint for the Joblane API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/joblane/joblane/internal/auth"
	"github.com/joblane/joblane/internal/config"
	"github.com/joblane/joblane/internal/handler"
	"github.com/joblane/joblane/internal/middleware"
	"github.com/joblane/joblane/internal/repository"
	"github.com/joblane/joblane/internal/server"
	"github.com/joblane/joblane/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize token issuer with the configured secret
	issuer := auth.NewTokenIssuer([]byte(cfg.TokenSecret))

	// Initialize services
	companyService := service.NewCompanyService(repo)
	jobService := service.NewJobService(repo)
	userService := service.NewUserService(repo)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo)
	authHandler := handler.NewAuthHandler(userService, issuer, logger)
	companyHandler := handler.NewCompanyHandler(companyService, logger)
	jobHandler := handler.NewJobHandler(jobService, logger)
	userHandler := handler.NewUserHandler(userService, issuer, logger)

	// Setup router
	r := setupRouter(h, healthHandler, authHandler, companyHandler, jobHandler, userHandler, issuer, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
//
// Authentication runs on every request and only establishes identity;
// the guards on each route decide whether that identity is allowed.
// Because guards run before handlers, a forbidden caller is rejected
// before any lookup can reveal whether the target exists.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	companyHandler *handler.CompanyHandler,
	jobHandler *handler.JobHandler,
	userHandler *handler.UserHandler,
	issuer *auth.TokenIssuer,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	if origins := cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	r.Use(middleware.Authenticate(issuer, logger))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Root info endpoint
	r.Get("/", h.Hello)

	// Login and self-service registration
	r.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.Token)
		r.Post("/register", authHandler.Register)
	})

	// Companies: reads are public, mutations are admin-only
	r.Route("/companies", func(r chi.Router) {
		r.Get("/", companyHandler.List)
		r.Get("/{handle}", companyHandler.Get)
		r.With(middleware.RequireAdmin()).Post("/", companyHandler.Create)
		r.With(middleware.RequireAdmin()).Patch("/{handle}", companyHandler.Update)
		r.With(middleware.RequireAdmin()).Delete("/{handle}", companyHandler.Delete)
	})

	// Jobs: reads are public, mutations are admin-only
	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", jobHandler.List)
		r.Get("/{id}", jobHandler.Get)
		r.With(middleware.RequireAdmin()).Post("/", jobHandler.Create)
		r.With(middleware.RequireAdmin()).Patch("/{id}", jobHandler.Update)
		r.With(middleware.RequireAdmin()).Delete("/{id}", jobHandler.Delete)
	})

	// Users: creation is admin-only, listing needs a login, everything
	// per-user needs the user themselves or an admin
	r.Route("/users", func(r chi.Router) {
		r.With(middleware.RequireAdmin()).Post("/", userHandler.Create)
		r.With(middleware.RequireLoggedIn()).Get("/", userHandler.List)
		r.With(middleware.RequireSelfOrAdmin("username")).Get("/{username}", userHandler.Get)
		r.With(middleware.RequireSelfOrAdmin("username")).Patch("/{username}", userHandler.Update)
		r.With(middleware.RequireSelfOrAdmin("username")).Delete("/{username}", userHandler.Delete)
		r.With(middleware.RequireSelfOrAdmin("username")).Post("/{username}/jobs/{id}", userHandler.Apply)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
