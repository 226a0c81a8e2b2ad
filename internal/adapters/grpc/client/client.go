// Package client は一覧サービスの gRPC クライアントです。各型は coordinator.Remote を満たします。
package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ogurasousui/admin-console-sync/internal/adapters/grpc/collection"
	"github.com/ogurasousui/admin-console-sync/internal/core/company"
	"github.com/ogurasousui/admin-console-sync/internal/core/coordinator"
	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
	"github.com/ogurasousui/admin-console-sync/internal/core/location"
	"github.com/ogurasousui/admin-console-sync/internal/core/workspace"
)

// ErrTransport はリモート呼び出しが完了しなかったことを表します。
var ErrTransport = errors.New("client: transport failure")

// Dial は addr への接続を作成します。
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
	conn, err := grpc.NewClient(addr, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return conn, nil
}

// Collection は 1 つの一覧サービスのクライアントです。F は一覧の絞り込み条件の型です。
type Collection[T, P, F any] struct {
	conn    grpc.ClientConnInterface
	service string
	log     zerolog.Logger
}

type (
	Employees = Collection[employee.Employee, employee.Patch, employee.Filter]
	Companies = Collection[company.Company, company.Patch, company.Filter]
	Locations = Collection[location.Location, location.Patch, location.Filter]
)

// NewCollection は service 名のクライアントを生成します。
func NewCollection[T, P, F any](conn grpc.ClientConnInterface, service string, logger zerolog.Logger) *Collection[T, P, F] {
	return &Collection[T, P, F]{
		conn:    conn,
		service: service,
		log:     logger.With().Str("service", service).Logger(),
	}
}

func NewEmployees(conn grpc.ClientConnInterface, logger zerolog.Logger) *Employees {
	return NewCollection[employee.Employee, employee.Patch, employee.Filter](conn, collection.EmployeeService, logger)
}

func NewCompanies(conn grpc.ClientConnInterface, logger zerolog.Logger) *Companies {
	return NewCollection[company.Company, company.Patch, company.Filter](conn, collection.CompanyService, logger)
}

func NewLocations(conn grpc.ClientConnInterface, logger zerolog.Logger) *Locations {
	return NewCollection[location.Location, location.Patch, location.Filter](conn, collection.LocationService, logger)
}

// Remotes は conn 上の 3 つのクライアントを Workspace 用にまとめます。
func Remotes(conn grpc.ClientConnInterface, logger zerolog.Logger) workspace.Remotes {
	return workspace.Remotes{
		Employees: NewEmployees(conn, logger),
		Companies: NewCompanies(conn, logger),
		Locations: NewLocations(conn, logger),
	}
}

// List は絞り込み無しの一覧を返します。失敗はそのまま返します。
func (c *Collection[T, P, F]) List(ctx context.Context) ([]T, error) {
	return c.list(ctx, nil)
}

// ListWhere は filter に一致する一覧を返します。
// 取得に失敗した場合は警告を記録し、空の一覧を返します。
func (c *Collection[T, P, F]) ListWhere(ctx context.Context, filter F) []T {
	items, err := c.list(ctx, filter)
	if err != nil {
		c.log.Warn().Err(err).Msg("filtered list failed; returning empty list")
		return []T{}
	}
	return items
}

func (c *Collection[T, P, F]) list(ctx context.Context, filter any) ([]T, error) {
	req := &structpb.Struct{}
	if filter != nil {
		encoded, err := collection.Encode(filter)
		if err != nil {
			return nil, err
		}
		req = encoded
	}

	out := &structpb.ListValue{}
	if err := c.conn.Invoke(ctx, collection.FullMethod(c.service, collection.MethodList), req, out); err != nil {
		return nil, c.fail(collection.MethodList, "", err)
	}
	return collection.DecodeList[T](out)
}

// Get は id のエンティティを取得します。
func (c *Collection[T, P, F]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, collection.FullMethod(c.service, collection.MethodGet), wrapperspb.String(id), out); err != nil {
		return zero, c.fail(collection.MethodGet, id, err)
	}
	return decode[T](out)
}

// Create はエンティティを作成し、サーバーが採番した値を返します。
func (c *Collection[T, P, F]) Create(ctx context.Context, entity T) (T, error) {
	var zero T
	req, err := collection.Encode(entity)
	if err != nil {
		return zero, err
	}
	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, collection.FullMethod(c.service, collection.MethodCreate), req, out); err != nil {
		return zero, c.fail(collection.MethodCreate, "", err)
	}
	return decode[T](out)
}

// Update は patch を送り、更新後の全体を返します。
func (c *Collection[T, P, F]) Update(ctx context.Context, id string, patch P) (T, error) {
	var zero T
	req, err := collection.Encode(collection.UpdateRequest[P]{ID: id, Patch: patch})
	if err != nil {
		return zero, err
	}
	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, collection.FullMethod(c.service, collection.MethodUpdate), req, out); err != nil {
		return zero, c.fail(collection.MethodUpdate, id, err)
	}
	return decode[T](out)
}

// Delete は id のエンティティを削除します。
func (c *Collection[T, P, F]) Delete(ctx context.Context, id string) error {
	if err := c.conn.Invoke(ctx, collection.FullMethod(c.service, collection.MethodDelete), wrapperspb.String(id), &emptypb.Empty{}); err != nil {
		return c.fail(collection.MethodDelete, id, err)
	}
	return nil
}

// fail は NotFound を coordinator.ErrNotFound に、それ以外を ErrTransport に対応付けます。
func (c *Collection[T, P, F]) fail(method, id string, err error) error {
	target := ErrTransport
	if status.Code(err) == codes.NotFound {
		target = coordinator.ErrNotFound
	}
	if id != "" {
		return fmt.Errorf("%s/%s %q: %w: %w", c.service, method, id, target, err)
	}
	return fmt.Errorf("%s/%s: %w: %w", c.service, method, target, err)
}

func decode[T any](s *structpb.Struct) (T, error) {
	var out T
	if err := collection.Decode(s, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
