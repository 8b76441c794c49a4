package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/geofence-console/internal/adapter/postgres"
	geofencerepo "github.com/heartmarshall/geofence-console/internal/adapter/postgres/geofence"
	"github.com/heartmarshall/geofence-console/internal/adapter/postgres/organization"
	"github.com/heartmarshall/geofence-console/internal/auth"
	"github.com/heartmarshall/geofence-console/internal/config"
	"github.com/heartmarshall/geofence-console/internal/service/registry"
	"github.com/heartmarshall/geofence-console/internal/transport/middleware"
	"github.com/heartmarshall/geofence-console/internal/transport/rest"
)

// RunServer serves the geofence REST API until ctx is cancelled, then shuts
// the HTTP server down gracefully.
func RunServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.ValidateServer(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger.InfoContext(ctx, "starting geofence api",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      NewHandler(cfg, pool, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// NewHandler assembles repositories, the registry service and the HTTP
// handler with its middleware chain.
func NewHandler(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) http.Handler {
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	svc := registry.NewService(
		logger,
		geofencerepo.New(pool),
		organization.New(pool),
		postgres.NewTxManager(pool),
	)

	return rest.NewRouter(
		rest.NewHealthHandler(BuildVersion(),
			rest.Probe{Name: "database", Check: pool.Ping},
			rest.Probe{Name: "schema", Check: func(ctx context.Context) error { return postgres.CheckSchema(ctx, pool) }},
		),
		rest.NewGeofenceHandler(svc, cfg.Server.MaxBodyBytes, logger),
		middleware.NewRateLimiter(10*time.Minute).Limit(cfg.Server.MutationsPerMinute),
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(tokens, logger),
		middleware.Logger(logger),
	)
}
