package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jambotours/jambo-go/internal/clock"
	"github.com/jambotours/jambo-go/internal/config"
	"github.com/jambotours/jambo-go/internal/postgres"
	redisx "github.com/jambotours/jambo-go/internal/redis"
	postgresrepo "github.com/jambotours/jambo-go/internal/repository/postgres"
	redisrepo "github.com/jambotours/jambo-go/internal/repository/redis"
	"github.com/jambotours/jambo-go/internal/service"
	"github.com/jambotours/jambo-go/internal/service/availability"
	"github.com/jambotours/jambo-go/internal/service/holds"
	httpgin "github.com/jambotours/jambo-go/internal/transport/http/gin"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	holds      *holds.Service
	closers    []func()
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	pool, err := postgres.New(context.Background(), postgres.Config{DSN: cfg.Postgres.DSN()})
	if err != nil {
		return nil, fmt.Errorf("initialize postgres: %w", err)
	}

	rdb, err := redisx.New(context.Background(), redisx.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("initialize redis: %w", err)
	}

	store := postgresrepo.NewStore(pool)
	cache := redisrepo.New(rdb)
	pubsub := redisx.NewResourcesPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "jambo:v1:rl", cfg.Holds.RateLimit, cfg.Holds.RateWindow)
	idem := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)

	services := service.NewServices(store, cache, pubsub, limiter, clock.NewSystem(), service.Config{
		Availability: availability.Config{HoldTTL: cfg.Holds.TTL},
	})

	router := httpgin.NewRouter(services, idem, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
		holds: services.Holds,
		closers: []func(){
			func() { _ = rdb.Close() },
			pool.Close,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("start HTTP server: %w", err)
		}
		return nil
	})

	// Expired holds stop counting against capacity the moment they lapse;
	// this loop only clears out the leftover rows.
	g.Go(func() error {
		ticker := time.NewTicker(a.cfg.Holds.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				n, err := a.holds.Expire(gCtx)
				if err != nil {
					a.logger.Warn("hold sweep failed", "error", err)
					continue
				}
				if n > 0 {
					a.logger.Info("expired stale holds", "count", n)
				}
			}
		}
	})

	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(shutdownCtx)
	})

	err := g.Wait()

	for _, closeFn := range a.closers {
		closeFn()
	}

	return err
}
