package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"anima/config"
	"anima/db"
	"anima/internal/broker"
	"anima/internal/logger"
	"anima/internal/ratelimit"
	"anima/routes"
	"anima/services"
	"anima/utils"
	"anima/websocket"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "./config/config.yml"), "Path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		// logger is not configured yet
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret (or JWT_SECRET) must be set")
	}
	utils.SetJWTSecret(cfg.JWT.Secret)
	utils.SetJWTExpiry(cfg.JWTExpiry())

	loc, _ := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.ConnectMongoDB(ctx, cfg.Database.URI); err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	store := services.NewMongoStore(db.MongoDatabase)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal("failed to create indexes", zap.Error(err))
	}

	hub := websocket.NewHub()
	var publisher services.EventPublisher = hub
	var authLimiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(authRateConfig(cfg))

	if cfg.Redis.Addr != "" {
		rdb, err := broker.InitRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		if err := broker.NewStreamConsumer(rdb, hub).Start(ctx); err != nil {
			log.Fatal("failed to start progression stream consumer", zap.Error(err))
		}
		publisher = broker.NewStreamPublisher(rdb)
		authLimiter = ratelimit.NewRedisLimiter(rdb, "auth", authRateConfig(cfg))
		log.Info("progression events routed through Redis stream", zap.String("stream", broker.StreamKey))
	} else {
		log.Info("Redis not configured, delivering progression events in process")
	}

	game := services.InitGameService(store,
		services.WithPublisher(publisher),
		services.WithLocation(loc),
		services.WithLogger(log),
	)
	services.InitAuthService(store, game)

	router := routes.SetupRouter(routes.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Hub:            hub,
		AuthLimiter:    authLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.Int("port", cfg.Server.Port), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
	if err := broker.CloseRedis(); err != nil {
		log.Warn("redis close error", zap.Error(err))
	}
	if err := db.DisconnectMongoDB(shutdownCtx); err != nil {
		log.Warn("mongo disconnect error", zap.Error(err))
	}
	log.Info("shutdown complete")
}

func authRateConfig(cfg *config.Config) ratelimit.Config {
	return ratelimit.Config{Max: cfg.RateLimit.AuthMax, Window: cfg.AuthRateWindow()}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
