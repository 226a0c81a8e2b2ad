package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ogurasousui/admin-console-sync/internal/adapters/grpc/collection"
	"github.com/ogurasousui/admin-console-sync/internal/core/employee"
)

// EmployeeGrpcHandler は EmployeeService の gRPC 実装です。
type EmployeeGrpcHandler struct {
	svc employee.UseCase
}

var _ collection.Handler = (*EmployeeGrpcHandler)(nil)

// NewEmployeeGrpcHandler は EmployeeGrpcHandler を生成します。
func NewEmployeeGrpcHandler(svc employee.UseCase) *EmployeeGrpcHandler {
	return &EmployeeGrpcHandler{svc: svc}
}

// List は条件に一致する社員を返します。
func (h *EmployeeGrpcHandler) List(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	var filter employee.Filter
	if err := collection.Decode(req, &filter); err != nil {
		return nil, toStatusError(err)
	}

	employees, err := h.svc.ListEmployees(ctx, employee.ListEmployeesInput{Filter: filter})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encodeList(employees)
}

// Get は社員を取得します。
func (h *EmployeeGrpcHandler) Get(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.GetEmployee(ctx, employee.GetEmployeeInput{ID: req.GetValue()})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(found)
}

// Create は社員を作成します。ID はサーバーで採番します。
func (h *EmployeeGrpcHandler) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var in employee.Employee
	if err := collection.Decode(req, &in); err != nil {
		return nil, toStatusError(err)
	}

	created, err := h.svc.CreateEmployee(ctx, employee.CreateEmployeeInput{Employee: in})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(created)
}

// Update は社員情報を部分更新します。
func (h *EmployeeGrpcHandler) Update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var in collection.UpdateRequest[employee.Patch]
	if err := collection.Decode(req, &in); err != nil {
		return nil, toStatusError(err)
	}

	updated, err := h.svc.UpdateEmployee(ctx, employee.UpdateEmployeeInput{ID: in.ID, Patch: in.Patch})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(updated)
}

// Delete は社員を削除します。
func (h *EmployeeGrpcHandler) Delete(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := h.svc.DeleteEmployee(ctx, employee.DeleteEmployeeInput{ID: req.GetValue()}); err != nil {
		return nil, toStatusError(err)
	}

	return &emptypb.Empty{}, nil
}
