package handler

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/ogurasousui/admin-console-sync/internal/adapters/grpc/collection"
	"github.com/ogurasousui/admin-console-sync/internal/core/location"
)

// LocationGrpcHandler は LocationService の gRPC 実装です。
type LocationGrpcHandler struct {
	svc location.UseCase
}

var _ collection.Handler = (*LocationGrpcHandler)(nil)

func NewLocationGrpcHandler(svc location.UseCase) *LocationGrpcHandler {
	return &LocationGrpcHandler{svc: svc}
}

func (h *LocationGrpcHandler) List(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	var filter location.Filter
	if err := collection.Decode(req, &filter); err != nil {
		return nil, toStatusError(err)
	}

	locations, err := h.svc.ListLocations(ctx, location.ListLocationsInput{Filter: filter})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encodeList(locations)
}

func (h *LocationGrpcHandler) Get(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	found, err := h.svc.GetLocation(ctx, location.GetLocationInput{ID: req.GetValue()})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(found)
}

func (h *LocationGrpcHandler) Create(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var in location.Location
	if err := collection.Decode(req, &in); err != nil {
		return nil, toStatusError(err)
	}

	created, err := h.svc.CreateLocation(ctx, location.CreateLocationInput{Location: in})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(created)
}

func (h *LocationGrpcHandler) Update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var in collection.UpdateRequest[location.Patch]
	if err := collection.Decode(req, &in); err != nil {
		return nil, toStatusError(err)
	}

	updated, err := h.svc.UpdateLocation(ctx, location.UpdateLocationInput{ID: in.ID, Patch: in.Patch})
	if err != nil {
		return nil, toStatusError(err)
	}

	return encode(updated)
}

func (h *LocationGrpcHandler) Delete(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := h.svc.DeleteLocation(ctx, location.DeleteLocationInput{ID: req.GetValue()}); err != nil {
		return nil, toStatusError(err)
	}

	return &emptypb.Empty{}, nil
}
