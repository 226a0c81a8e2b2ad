package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/admin-console-sync/internal/adapters/repository/postgres"
	"github.com/ogurasousui/admin-console-sync/internal/adapters/repository/sqlite"
	"github.com/ogurasousui/admin-console-sync/internal/core/company"
	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
	"github.com/ogurasousui/admin-console-sync/internal/core/location"
	"github.com/ogurasousui/admin-console-sync/internal/platform/config"
	pg "github.com/ogurasousui/admin-console-sync/internal/platform/db/postgres"
	"github.com/ogurasousui/admin-console-sync/internal/platform/logging"
	"github.com/ogurasousui/admin-console-sync/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	svcs, closer, err := buildServices(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to initialize storage")
	}
	defer closer.Close()

	grpcServer := server.New(cfg.Server.ListenAddr, svcs, logger)

	logger.Info().Str("addr", cfg.Server.ListenAddr).Str("driver", cfg.Database.Driver).Msg("gRPC server listening")

	if err := grpcServer.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server stopped with error")
	}
	logger.Info().Msg("server stopped")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func buildServices(ctx context.Context, cfg config.DatabaseConfig) (server.Services, io.Closer, error) {
	if cfg.Driver == config.DriverSQLite {
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return server.Services{}, nil, err
		}
		return server.Services{
			Employees: employee.NewService(sqlite.NewEmployeeRepository(db), nil, nil),
			Companies: company.NewService(sqlite.NewCompanyRepository(db), nil),
			Locations: location.NewService(sqlite.NewLocationRepository(db), nil),
		}, db, nil
	}

	pool, err := pg.NewPool(ctx, cfg)
	if err != nil {
		return server.Services{}, nil, err
	}
	tx := pg.NewTransactionManager(pool)
	return server.Services{
		Employees: employee.NewService(postgres.NewEmployeeRepository(pool), nil, tx),
		Companies: company.NewService(postgres.NewCompanyRepository(pool), tx),
		Locations: location.NewService(postgres.NewLocationRepository(pool), tx),
	}, closerFunc(func() error { pool.Close(); return nil }), nil
}
