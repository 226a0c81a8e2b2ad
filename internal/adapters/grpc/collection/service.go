// Package collection は一覧 CRUD の gRPC サービス定義です。
//
// メッセージには protobuf の既知型 (Struct, ListValue, StringValue, Empty) を使い、
// エンティティは JSON と同じ形の Struct として送受信します。
package collection

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	EmployeeService = "console.v1.EmployeeService"
	CompanyService  = "console.v1.CompanyService"
	LocationService = "console.v1.LocationService"
)

const (
	MethodList   = "List"
	MethodGet    = "Get"
	MethodCreate = "Create"
	MethodUpdate = "Update"
	MethodDelete = "Delete"
)

// Handler は 1 つの一覧サービスのサーバー実装です。
//
// List は絞り込み条件の Struct を受け取り、Update は {"id": ..., "patch": {...}} 形式の Struct を受け取ります。
type Handler interface {
	List(ctx context.Context, filter *structpb.Struct) (*structpb.ListValue, error)
	Get(ctx context.Context, id *wrapperspb.StringValue) (*structpb.Struct, error)
	Create(ctx context.Context, entity *structpb.Struct) (*structpb.Struct, error)
	Update(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Delete(ctx context.Context, id *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// FullMethod は "/service/method" 形式のメソッド名を返します。
func FullMethod(service, method string) string {
	return "/" + service + "/" + method
}

// ServiceDesc は service 名で Handler を公開するための記述子を返します。
func ServiceDesc(service string) *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: service,
		HandlerType: (*Handler)(nil),
		Methods: []grpc.MethodDesc{
			unary(service, MethodList, newStruct, Handler.List),
			unary(service, MethodGet, newString, Handler.Get),
			unary(service, MethodCreate, newStruct, Handler.Create),
			unary(service, MethodUpdate, newStruct, Handler.Update),
			unary(service, MethodDelete, newString, Handler.Delete),
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "console/v1/collection.proto",
	}
}

// Register は h を service 名で登録します。
func Register(r grpc.ServiceRegistrar, service string, h Handler) {
	r.RegisterService(ServiceDesc(service), h)
}

func newStruct() *structpb.Struct { return &structpb.Struct{} }

func newString() *wrapperspb.StringValue { return &wrapperspb.StringValue{} }

func unary[Req, Resp proto.Message](service, method string, newReq func() Req, call func(Handler, context.Context, Req) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(Handler), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(service, method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(Handler), ctx, req.(Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
