// Package main is the entry point for the Mort Manager API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"github.com/erslabs/mort-manager/backend/internal/config"
	"github.com/erslabs/mort-manager/backend/internal/handler"
	"github.com/erslabs/mort-manager/backend/internal/live"
	"github.com/erslabs/mort-manager/backend/internal/middleware"
	"github.com/erslabs/mort-manager/backend/internal/repo"
	"github.com/erslabs/mort-manager/backend/internal/service"
	"github.com/erslabs/mort-manager/backend/migrations"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ----------------------------------------------------------
	st, closeStore, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.SeedSampleMeals {
		n, err := repo.SeedSampleMeals(ctx, st.meals)
		if err != nil {
			return fmt.Errorf("seed sample meals: %w", err)
		}
		slog.Info("sample meals seeded", "count", n)
	}

	// --- Services ---------------------------------------------------------
	hub := live.NewHub(logger, cfg.CORSOrigins)
	srv := handler.NewServer(handler.Services{
		Trips:         service.NewTripService(st.trips),
		Meals:         service.NewMealService(st.meals),
		TripMeals:     service.NewTripMealService(st.trips, st.meals, st.tripMeals),
		ShoppingLists: service.NewShoppingListService(st.trips, st.meals, st.tripMeals, st.lists, hub),
		Nutrition:     service.NewNutritionService(st.trips, st.meals, st.tripMeals),
		Live:          hub,
	})

	// --- Router -----------------------------------------------------------
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP.
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount(cfg.BasePath, handler.NewRouter(srv))

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		slog.Info("server starting", "addr", httpSrv.Addr, "base_path", cfg.BasePath, "memory_store", cfg.UsesMemoryStore())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Graceful shutdown: on signal (or a failed sibling), give in-flight
		// requests up to SHUTDOWN_TIMEOUT to complete.
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}

// stores bundles the repositories the services are built on.
type stores struct {
	trips     repo.TripRepo
	meals     repo.MealRepo
	tripMeals repo.TripMealRepo
	lists     repo.ShoppingListRepo
}

// openStores selects the in-memory store when no DATABASE_URL is set and
// Postgres otherwise. The returned func releases the store.
func openStores(ctx context.Context, cfg config.Config) (stores, func(), error) {
	if cfg.UsesMemoryStore() {
		slog.Info("using in-memory store")
		m := repo.NewMemory()
		return stores{
			trips:     m.Trips(),
			meals:     m.Meals(),
			tripMeals: m.TripMeals(),
			lists:     m.ShoppingLists(),
		}, func() {}, nil
	}

	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return stores{}, nil, fmt.Errorf("create database pool: %w", err)
	}
	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return stores{}, nil, fmt.Errorf("connect to database: %w", err)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		db := stdlib.OpenDBFromPool(pool)
		n, err := migrations.Up(ctx, db)
		closeLogged(slog.Default(), "migration db", db)
		if err != nil {
			pool.Close()
			return stores{}, nil, err
		}
		slog.Info("migrations applied", "count", n)
	}

	return stores{
		trips:     repo.NewTripRepo(pool),
		meals:     repo.NewMealRepo(pool),
		tripMeals: repo.NewTripMealRepo(pool),
		lists:     repo.NewShoppingListRepo(pool),
	}, pool.Close, nil
}

// closeLogged closes c and logs a failure at warn level.
func closeLogged(logger *slog.Logger, name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Warn("close failed", "resource", name, "error", err)
	}
}
