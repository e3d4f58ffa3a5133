package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/filizakkol1/pizzeria/internal/cart"
	"github.com/filizakkol1/pizzeria/internal/catalog"
	"github.com/filizakkol1/pizzeria/internal/checkout"
	"github.com/filizakkol1/pizzeria/internal/orders"
	"github.com/filizakkol1/pizzeria/internal/store"
	"github.com/filizakkol1/pizzeria/internal/web"
)

type Config struct {
	HTTPPort        string
	StoreBackend    string
	StoreFile       string
	RedisAddr       string
	MongoURI        string
	MongoDatabase   string
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	// A local .env is optional.
	_ = godotenv.Load()

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StoreBackend:    getEnv("STORE_BACKEND", "file"),
		StoreFile:       getEnv("STORE_FILE", "pizzeria.json"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DB_NAME", "pizzeria"),
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	st, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to set up store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closeStore()

	engine := cart.NewEngine(ctx, st, logger)
	orderLog := orders.NewLog(st, logger)
	checkoutSvc := checkout.NewService(engine, orderLog, logger)

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatal("failed to set up templates", zap.Error(err))
	}

	handler := web.NewHandler(catalog.New(), engine, checkoutSvc, renderer, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      web.NewRouter(handler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront starting", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// buildStore constructs the persistent store named by STORE_BACKEND. The
// returned close function releases any client connection the backend holds.
func buildStore(ctx context.Context, cfg *Config) (store.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemoryStore(), noop, nil
	case "file":
		return store.NewFileStore(cfg.StoreFile), noop, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, noop, fmt.Errorf("failed to ping redis: %w", err)
		}
		return store.NewRedisStore(client), func() { client.Close() }, nil
	case "mongo":
		db, err := store.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, noop, err
		}
		disconnect := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Client().Disconnect(disconnectCtx)
		}
		return store.NewMongoStore(db), disconnect, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
