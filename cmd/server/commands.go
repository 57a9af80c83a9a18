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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/stagebook/internal/config"
	"github.com/iliyamo/stagebook/internal/database"
	"github.com/iliyamo/stagebook/internal/queue"
	"github.com/iliyamo/stagebook/internal/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server (and the catalog event consumer when events are enabled)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing tables for the configured database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		setupLogging(cfg)
		db, err := database.Open(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		logrus.WithField("driver", cfg.DBDriver).Info("schema is up to date")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default trivia categories into an empty database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		setupLogging(cfg)
		db, err := database.Open(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		n, err := database.Seed(cmd.Context(), db)
		if err != nil {
			return err
		}
		logrus.WithField("categories", n).Info("seed complete")
		return nil
	},
}

var migrateOnStart bool

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "run migrate and seed before serving")
	rootCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "run migrate and seed before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	setupLogging(cfg)

	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// SQLite is meant for local runs, so its schema is always bootstrapped.
	if migrateOnStart || cfg.DBDriver == "sqlite" {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		if _, err := database.Seed(ctx, db); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	g, ctx := errgroup.WithContext(ctx)

	var events queue.Publisher = queue.NopPublisher{}
	if cfg.EventsEnabled {
		async := queue.NewAsyncPublisher(queue.NewAMQPPublisher(cfg.AMQPURL), 256)
		events = async
		g.Go(func() error { return async.Run(ctx) })
		g.Go(func() error {
			if err := queue.NewConsumer(cfg.AMQPURL).Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	e := router.New(router.Deps{
		Config:    cfg,
		DB:        db,
		Redis:     config.NewRedisClient(),
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Events:    events,
		Registry:  reg,
	})

	addr := ":" + cfg.Port
	g.Go(func() error {
		logrus.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env, "apps": cfg.Apps}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logrus.Info("server stopped")
	return err
}
