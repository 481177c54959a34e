package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"perfil/internal/config"
	"perfil/internal/core/auth"
	"perfil/internal/core/profile"
	"perfil/internal/domain"
	"perfil/internal/event"
	"perfil/internal/logger"
	"perfil/internal/storage/postgres"
	redisstore "perfil/internal/storage/redis"
	"perfil/internal/transport/rest"
	"perfil/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.JWTSecret == "" {
		panic("FATAL: JWT_SECRET is mandatory for Server!")
	}

	dbPool, err := postgres.InitDB(cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to init DB", "error", err)
		return
	}
	defer dbPool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Error("invalid REDIS_URL", "error", err)
		return
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	profileRepo := postgres.NewProfileRepository(dbPool)

	profileService := profile.NewService(profileRepo)
	authService := auth.NewService(profileRepo, cfg.JWTSecret, cfg.JWTExpiry)

	hub := ws.NewHub(ctx, log)
	history := redisstore.NewHistory(rdb, 1000)

	bus := event.New(log)
	bus.Subscribe(event.NotificationEvent, func(e any) {
		n, ok := e.(domain.Notification)
		if !ok {
			return
		}

		hub.Notify(n)

		appendCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := history.Append(appendCtx, n); err != nil {
			log.Warn("failed to append notification history", "error", err)
		}
	})
	notifier := event.NewBusNotifier(bus)

	authHandler := rest.NewAuthHandler(authService, cfg)
	profileHandler := rest.NewProfileHandler(profileService, history, notifier)
	wsHandler := ws.NewHandler(hub, log, cfg.JWTSecret, cfg.AllowedOrigins)

	router := rest.NewRouter(cfg, &rest.RouterDeps{
		Auth:    authHandler,
		Profile: profileHandler,
		Ws:      wsHandler,
	})

	srv := rest.NewServer(router, cfg.Address)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run()
		return nil
	})

	g.Go(func() error {
		log.Info("http: starting server", "address", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		hub.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("http: server error", "error", err)
	}

	log.Info("server stopped")
}
