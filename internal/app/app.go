// Package app wires configuration, storage and services into a running HTTP
// server and owns their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/cinevault/movies-api/internal/api"
	"github.com/cinevault/movies-api/internal/api/handler"
	"github.com/cinevault/movies-api/internal/core/service"
	"github.com/cinevault/movies-api/internal/infrastructure/db/mongo"
	"github.com/cinevault/movies-api/internal/infrastructure/db/redis"
	"github.com/cinevault/movies-api/internal/infrastructure/db/sqlstore"
	"github.com/cinevault/movies-api/internal/infrastructure/queue"
	"github.com/cinevault/movies-api/internal/infrastructure/security"
	"github.com/cinevault/movies-api/internal/pkg/config"
)

type App struct {
	cfg    *config.Config
	log    zerolog.Logger
	store  *sqlstore.Store
	redis  *goredis.Client
	mongo  *gomongo.Client
	pool   *queue.Pool
	router *echo.Echo
}

// New opens every configured backend, runs migrations and builds the router.
// Redis and MongoDB are optional; they are skipped when their address is
// empty. On error everything opened so far is closed again.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (_ *App, err error) {
	a := &App{cfg: cfg, log: log}
	defer func() {
		if err != nil {
			a.Close(context.Background())
		}
	}()

	a.store, err = sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.URL, cfg.Database.QueryTimeout)
	if err != nil {
		return nil, err
	}
	if err = a.store.Migrate(ctx, log); err != nil {
		return nil, err
	}
	log.Info().Str("driver", a.store.Dialect().Name()).Msg("database ready")

	authOpts := []service.AuthOption{service.WithAdminRegistrationKey(cfg.Auth.AdminRegistrationKey)}

	if cfg.Redis.Addr != "" {
		a.redis, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		authOpts = append(authOpts, service.WithLoginThrottle(
			redis.NewLoginThrottle(a.redis, cfg.Redis.MaxAttempts, cfg.Redis.LockoutWindow)))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttling enabled")
	}

	if cfg.Mongo.URI != "" {
		var db *gomongo.Database
		a.mongo, db, err = mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if ierr := mongo.EnsureIndexes(ctx, db); ierr != nil {
			log.Warn().Err(ierr).Msg("audit index not created")
		}
		authOpts = append(authOpts, service.WithAuditRecorder(mongo.NewAuditRepository(db)))
		log.Info().Str("database", cfg.Mongo.Database).Msg("auth audit trail enabled")
	}

	a.pool = queue.NewPool(cfg.Auth.HashWorkers, log)
	tokens := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := security.NewBcryptHasher(security.DefaultCost, a.pool)

	a.router = api.NewRouter(api.Dependencies{
		Log:       log,
		Auth:      service.NewAuthService(sqlstore.NewUserRepository(a.store), hasher, tokens, log, authOpts...),
		Movies:    service.NewMovieService(sqlstore.NewMovieRepository(a.store), log),
		Directors: service.NewDirectorService(sqlstore.NewDirectorRepository(a.store), log),
		Tokens:    tokens,
		Checks:    a.checks(),
	})
	return a, nil
}

func (a *App) checks() map[string]handler.Check {
	checks := map[string]handler.Check{
		a.store.Dialect().Name(): a.store.Ping,
	}
	if a.redis != nil {
		checks["redis"] = func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }
	}
	if a.mongo != nil {
		checks["mongodb"] = func(ctx context.Context) error { return a.mongo.Ping(ctx, nil) }
	}
	return checks
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler { return a.router }

// Run serves HTTP until ctx is cancelled, then shuts the server down within
// the configured timeout and waits for the hashing workers to drain.
func (a *App) Run(ctx context.Context) error {
	poolCtx, stopPool := context.WithCancel(context.Background())
	defer stopPool()
	a.pool.Start(poolCtx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info().Str("port", a.cfg.Port).Msg("http server listening")
		if err := a.router.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		return a.router.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	stopPool()
	a.pool.Wait()
	return err
}

// Close releases every backend that was opened.
func (a *App) Close(ctx context.Context) {
	if a.mongo != nil {
		disconnectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := a.mongo.Disconnect(disconnectCtx); err != nil {
			a.log.Warn().Err(err).Msg("mongo disconnect")
		}
		cancel()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("database close")
		}
	}
}
