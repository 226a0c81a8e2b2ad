//go:build integration

package integration

import (
	"context"
	"errors"
	"net"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/ogurasousui/admin-console-sync/internal/adapters/grpc/client"
	repo "github.com/ogurasousui/admin-console-sync/internal/adapters/repository/postgres"
	"github.com/ogurasousui/admin-console-sync/internal/core/company"
	"github.com/ogurasousui/admin-console-sync/internal/core/coordinator"
	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
	"github.com/ogurasousui/admin-console-sync/internal/core/location"
	"github.com/ogurasousui/admin-console-sync/internal/core/workspace"
	"github.com/ogurasousui/admin-console-sync/internal/platform/config"
	pg "github.com/ogurasousui/admin-console-sync/internal/platform/db/postgres"
	"github.com/ogurasousui/admin-console-sync/internal/platform/server"
)

const migrationsDir = "../assets/migrations"

func TestWorkspaceOverPostgresIntegration(t *testing.T) {
	cfg, err := config.Load(configPathFromEnv())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if err := resetMigrations(cfg.Database.DSN(), migrationsDir); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	tx := pg.NewTransactionManager(pool)
	srv := server.New("", server.Services{
		Employees: employee.NewService(repo.NewEmployeeRepository(pool), stubClock{now: time.Now().UTC()}, tx),
		Companies: company.NewService(repo.NewCompanyRepository(pool), tx),
		Locations: location.NewService(repo.NewLocationRepository(pool), tx),
	}, zerolog.Nop())

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	ws := workspace.New(client.Remotes(conn, zerolog.Nop()), zerolog.Nop(), coordinator.WithTimeout(5*time.Second))
	if err := ws.Load(ctx); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	created, err := ws.Employees.Create(ctx, employee.Employee{
		Name:       "Ana",
		Surname:    "García",
		Email:      "ana@example.com",
		Department: "Ventas",
		Salary:     42000,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	snapshot := ws.Employees.Store().Snapshot()
	if len(snapshot) != 1 || snapshot[0].ID != created.ID {
		t.Fatalf("expected placeholder swapped for %s, got %+v", created.ID, snapshot)
	}

	salary := 50000.0
	updated, err := ws.Employees.Update(ctx, created.ID, employee.Patch{Salary: &salary})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Salary != salary {
		t.Fatalf("update not applied: %+v", updated)
	}

	if _, err := ws.Employees.Get(ctx, "not-a-uuid"); !errors.Is(err, coordinator.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}

	if err := ws.Employees.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := ws.Employees.Get(ctx, created.ID); !errors.Is(err, coordinator.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if n := ws.Employees.Store().Len(); n != 0 {
		t.Fatalf("expected empty store, got %d", n)
	}
}

func resetMigrations(dsn, dir string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func configPathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "../assets/local.yaml"
}

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time {
	return s.now
}
