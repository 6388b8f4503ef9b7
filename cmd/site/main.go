package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio/internal/auth"
	"folio/internal/cache"
	"folio/internal/comments"
	"folio/internal/config"
	"folio/internal/consul"
	"folio/internal/database"
	"folio/internal/files"
	"folio/internal/logger"
	"folio/internal/media"
	"folio/internal/posts"
	"folio/internal/server"
	"folio/internal/settings"
	"folio/internal/storage"
	"folio/internal/token"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg := config.Load()

	log := logger.NewWithWriter(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting site",
		"env", cfg.Env,
		"port", cfg.Port,
		"storage_enabled", cfg.S3.Enabled(),
		"consul_enabled", cfg.Consul.Addr != "",
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := database.New(startCtx, database.Config{URL: cfg.DatabaseURL, MaxConns: cfg.DBMaxConns})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(startCtx, db); err != nil {
		slog.Error("Failed to apply schema", "error", err)
		os.Exit(1)
	}

	// The site runs without a cache; every read then goes to Postgres.
	var store cache.Store
	if redisStore, err := cache.NewRedisStore(startCtx, cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		slog.Warn("Redis unavailable, caching disabled", "addr", cfg.Redis.Addr, "error", err)
	} else {
		store = redisStore
		slog.Info("Connected to Redis", "addr", cfg.Redis.Addr)
	}

	var objects storage.Service
	if cfg.S3.Enabled() {
		objects, err = storage.New(startCtx, storage.Config{
			Endpoint:       cfg.S3.Endpoint,
			PublicEndpoint: cfg.S3.PublicEndpoint,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			Bucket:         cfg.S3.Bucket,
			UseSSL:         cfg.S3.UseSSL,
		})
		if err != nil {
			slog.Warn("Storage unavailable, uploads disabled", "error", err)
			objects = nil
		}
	}

	tokens := token.NewManager(token.Config{Secret: cfg.JWTSecret, TTL: cfg.TokenTTL})

	postsService := posts.NewService(posts.NewRepository(db), store)
	var mediaObjects media.ObjectStore
	if objects != nil {
		mediaObjects = objects
	}

	srv, err := server.New(server.Deps{
		Config:   cfg,
		DB:       db,
		Cache:    store,
		Storage:  objects,
		Tokens:   tokens,
		Auth:     auth.NewService(auth.NewRepository(db), tokens),
		Posts:    postsService,
		Media:    media.NewService(media.NewRepository(db), store, mediaObjects),
		Comments: comments.NewService(comments.NewRepository(db), postsService, store),
		Settings: settings.NewService(settings.NewRepository(db), store),
		Files:    files.NewService(objects),
	})
	if err != nil {
		slog.Error("Failed to build server", "error", err)
		os.Exit(1)
	}
	httpServer := srv.HTTPServer()

	var registrar consul.ServiceRegistrar
	var serviceID string
	if cfg.Consul.Addr != "" {
		client, err := consul.NewClientWithToken(cfg.Consul.Addr, cfg.Consul.Token)
		if err != nil {
			slog.Warn("Failed to create Consul client", "error", err)
		} else {
			svc := consul.SiteService(cfg.Host, cfg.Port)
			if err := client.Register(svc); err != nil {
				slog.Warn("Consul registration failed", "error", err)
			} else {
				registrar, serviceID = client, svc.ID
			}
		}
	}

	go func() {
		slog.Info("Site listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down site")

	if registrar != nil {
		if err := registrar.Deregister(serviceID); err != nil {
			slog.Warn("Consul deregistration failed", "error", err)
		}
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Site stopped")
}
