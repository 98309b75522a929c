package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/config"
	"github.com/taskhive/taskhive/internal/database"
	"github.com/taskhive/taskhive/internal/handlers"
	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/middleware"
	redisclient "github.com/taskhive/taskhive/internal/redis"
	"github.com/taskhive/taskhive/internal/service"
	"github.com/taskhive/taskhive/internal/storage"
)

// buildStore selects the Postgres backend when DATABASE_URL is configured,
// running migrations first, and falls back to the embedded in-memory store
// otherwise. The returned pool is nil for the memory backend.
func buildStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (storage.Store, *pgxpool.Pool, error) {
	if cfg.Database.DSN == "" {
		log.Info("No DATABASE_URL set, using in-memory storage")
		return storage.NewMemoryStore(), nil, nil
	}

	if err := storage.RunMigrations(ctx, cfg.Database.DSN); err != nil {
		return nil, nil, err
	}

	pool, err := database.Connect(ctx, database.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		return nil, nil, err
	}

	log.Info("Connected to Postgres")
	return storage.NewPostgresStore(pool), pool, nil
}

func main() {
	log := logger.New("taskhive")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	if cfg.UsingDefaultSecret() {
		log.Warn("JWT_SECRET not set, using default (insecure for production)")
	}
	if cfg.Auth.Mode == config.AuthDisabled {
		log.Warn("AUTH_MODE=disabled: every request runs as the shared anonymous account")
	}

	store, pgPool, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	if pgPool != nil {
		defer pgPool.Close()
	}

	var redisClient *redisclient.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redisclient.Connect(ctx, redisclient.Config{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Redis rate limiting enabled (%d req / %s)", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	users := service.NewUserService(store, jwtManager, cfg.Auth.Mode, cfg.Auth.TokenTTL)
	tasks := service.NewTaskService(store)

	mux := handlers.Routes(
		handlers.NewAuthHandler(users),
		handlers.NewTaskHandler(tasks),
		handlers.NewDashboardHandler(tasks),
		handlers.NewHealthHandler(pgPool, redisClient),
		middleware.NewAuthMiddleware(users),
	)

	var handler http.Handler = mux
	if redisClient != nil {
		limiter := middleware.NewRateLimiter(redisClient.Raw(), cfg.RateLimit.Requests, cfg.RateLimit.Window)
		handler = limiter.Middleware(handler)
	}
	handler = middleware.CORS(handler)
	handler = middleware.RequestLogger(logger.New("http"))(handler)
	handler = middleware.Recovery(log)(handler)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: handler,
	}

	go func() {
		log.Info("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown: %v", err)
	}
	log.Info("Server stopped")
}
