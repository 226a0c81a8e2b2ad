package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ogurasousui/admin-console-sync/internal/adapters/grpc/collection"
	"github.com/ogurasousui/admin-console-sync/internal/core/company"
)

// CompanyGrpcHandler は CompanyService の gRPC 実装です。
type CompanyGrpcHandler struct {
	svc company.UseCase
}

var _ collection.Handler = (*CompanyGrpcHandler)(nil)

// NewCompanyGrpcHandler は CompanyGrpcHandler を生成します。
func NewCompanyGrpcHandler(svc company.UseCase) *CompanyGrpcHandler {
	return &CompanyGrpcHandler{svc: svc}
}

// List は会社の一覧を返します。
func (h *CompanyGrpcHandler) List(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	var filter company.Filter
	if err := collection.Decode(req, &filter); err != nil {
		return nil, toStatusError(err)
	}

	companies, err := h.svc.ListCompanies(ctx, company.ListCompaniesInput{Filter: filter})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encodeList(companies)
}

// Get は会社を取得します。
func (h *CompanyGrpcHandler) Get(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.GetCompany(ctx, company.GetCompanyInput{ID: req.GetValue()})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(found)
}

// Create は会社を作成します。
func (h *CompanyGrpcHandler) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var in company.Company
	if err := collection.Decode(req, &in); err != nil {
		return nil, toStatusError(err)
	}

	created, err := h.svc.CreateCompany(ctx, company.CreateCompanyInput{Company: in})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(created)
}

// Update は会社情報を更新します。
func (h *CompanyGrpcHandler) Update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var in collection.UpdateRequest[company.Patch]
	if err := collection.Decode(req, &in); err != nil {
		return nil, toStatusError(err)
	}

	updated, err := h.svc.UpdateCompany(ctx, company.UpdateCompanyInput{ID: in.ID, Patch: in.Patch})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(updated)
}

// Delete は会社を削除します。
func (h *CompanyGrpcHandler) Delete(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := h.svc.DeleteCompany(ctx, company.DeleteCompanyInput{ID: req.GetValue()}); err != nil {
		return nil, toStatusError(err)
	}

	return &emptypb.Empty{}, nil
}
