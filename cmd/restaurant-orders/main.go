package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/LavaJover/restaurant-orders/internal/app/background"
	"github.com/LavaJover/restaurant-orders/internal/app/setup"
	"github.com/LavaJover/restaurant-orders/internal/config"
	"github.com/LavaJover/restaurant-orders/internal/infrastructure/logger"
	"github.com/LavaJover/restaurant-orders/internal/infrastructure/migrate"
	"github.com/LavaJover/restaurant-orders/internal/infrastructure/postgres"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file loaded")
	}

	app := &cli.App{
		Name:  "restaurant-orders",
		Usage: "restaurant order management service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to YAML config",
				EnvVars: []string{"ORDER_CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP and gRPC servers",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply database migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "down", Usage: "roll back the latest migration"},
					&cli.StringFlag{Name: "path", Usage: "migrations directory"},
				},
				Action: runMigrate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("restaurant-orders stopped")
	}
}

func loadConfig(c *cli.Context) (*config.OrderConfig, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err := logger.Setup(cfg.LogConfig); err != nil {
		return nil, errors.Wrap(err, "setup logger")
	}
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	deps, err := setup.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	ucs := setup.InitializeUseCases(deps)
	servers, err := setup.InitializeServers(deps, ucs)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	background.NewBackgroundTasks(deps.ReportingDB, servers.GRPC).StartAll(gctx)

	g.Go(func() error {
		log.WithField("addr", servers.HTTP.Addr).Info("HTTP server started")
		if err := servers.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http serve")
		}
		return nil
	})

	g.Go(func() error {
		return servers.GRPC.ListenAndServe(cfg.GRPCAddr())
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
		defer cancel()

		servers.GRPC.GracefulStop()
		if err := servers.HTTP.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "http shutdown")
		}
		return nil
	})

	return g.Wait()
}

func runMigrate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	path := cfg.OrderDB.MigrationsPath
	if c.IsSet("path") {
		path = c.String("path")
	}

	db, err := postgres.InitDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if c.Bool("down") {
		return migrate.RollbackMigration(db, path)
	}
	return migrate.RunMigrations(db, path)
}
