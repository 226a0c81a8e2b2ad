package server

import (
	"context"
	"net"
	"testing"

	"github.com/ogurasousui/admin-console-sync/internal/adapters/grpc/client"
	"github.com/ogurasousui/admin-console-sync/internal/adapters/repository/sqlite"
	"github.com/ogurasousui/admin-console-sync/internal/core/company"
	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
	"github.com/ogurasousui/admin-console-sync/internal/core/location"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func TestServer_ServesCollectionsAndHealth(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("sqlite.Open returned error: %v", err)
	}
	defer db.Close()

	srv := New("", Services{
		Employees: employee.NewService(sqlite.NewEmployeeRepository(db), nil, nil),
		Companies: company.NewService(sqlite.NewCompanyRepository(db), nil),
		Locations: location.NewService(sqlite.NewLocationRepository(db), nil),
	}, zerolog.Nop())

	lis := bufconn.Listen(1 << 20)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("grpc.NewClient returned error: %v", err)
	}
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: "console.v1.EmployeeService"})
	if err != nil {
		t.Fatalf("health check returned error: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("expected SERVING, got %s", resp.GetStatus())
	}

	companies := client.NewCompanies(conn, zerolog.Nop())
	created, err := companies.Create(ctx, company.Company{Name: "TechCorp", Country: "Canada"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	list, err := companies.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected companies: %+v", list)
	}

	srv.GracefulStop()
	if err := <-done; err != nil {
		t.Fatalf("Serve returned error after stop: %v", err)
	}
}
