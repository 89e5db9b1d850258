package daemon

import (
	"context"
	"encoding/json"

	"go.trai.ch/restore/internal/core/domain"
	"go.trai.ch/restore/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC name of the daemon service.
const ServiceName = "restore.daemon.v1.DaemonService"

const (
	methodNominate = "Nominate"
	methodRestore  = "Restore"
	methodStatus   = "Status"
	methodShutdown = "Shutdown"
)

// Messages are protobuf well-known types, so the service needs no generated code:
//
//	Nominate(Struct) returns (BoolValue)    nomination document, restore outcome
//	Restore(BoolValue) returns (BoolValue)  force flag, restore outcome
//	Status(Empty) returns (Struct)
//	Shutdown(Empty) returns (Empty)
type daemonService interface {
	Nominate(ctx context.Context, req *structpb.Struct) (*wrapperspb.BoolValue, error)
	Restore(ctx context.Context, req *wrapperspb.BoolValue) (*wrapperspb.BoolValue, error)
	Status(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Shutdown(ctx context.Context, req *emptypb.Empty) (*emptypb.Empty, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*daemonService)(nil),
	Methods: []grpc.MethodDesc{
		unary(methodNominate, func() *structpb.Struct { return new(structpb.Struct) }, daemonService.Nominate),
		unary(methodRestore, func() *wrapperspb.BoolValue { return new(wrapperspb.BoolValue) }, daemonService.Restore),
		unary(methodStatus, func() *emptypb.Empty { return new(emptypb.Empty) }, daemonService.Status),
		unary(methodShutdown, func() *emptypb.Empty { return new(emptypb.Empty) }, daemonService.Shutdown),
	},
	Streams: []grpc.StreamDesc{},
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func unary[Req, Resp proto.Message](
	name string,
	newReq func() Req,
	call func(daemonService, context.Context, Req) (Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			svc, _ := srv.(daemonService)
			if interceptor == nil {
				return call(svc, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				typed, _ := req.(Req)
				return call(svc, ctx, typed)
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func nominationToStruct(n domain.NominationData) (*structpb.Struct, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode nomination")
	}
	s := new(structpb.Struct)
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, zerr.Wrap(err, "failed to encode nomination")
	}
	return s, nil
}

func nominationFromStruct(s *structpb.Struct) (domain.NominationData, error) {
	var n domain.NominationData
	data, err := protojson.Marshal(s)
	if err != nil {
		return n, zerr.Wrap(err, domain.ErrInvalidNomination.Error())
	}
	if err := json.Unmarshal(data, &n); err != nil {
		return n, zerr.Wrap(err, domain.ErrInvalidNomination.Error())
	}
	return n, nil
}

const (
	fieldRunning       = "running"
	fieldPID           = "pid"
	fieldUptime        = "uptimeSeconds"
	fieldIdleRemaining = "idleRemainingSeconds"
	fieldBusy          = "busy"
	fieldProjects      = "projects"
)

func statusToStruct(st *ports.DaemonStatus) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldRunning:       structpb.NewBoolValue(st.Running),
		fieldPID:           structpb.NewNumberValue(float64(st.PID)),
		fieldUptime:        structpb.NewNumberValue(st.Uptime.Seconds()),
		fieldIdleRemaining: structpb.NewNumberValue(st.IdleRemaining.Seconds()),
		fieldBusy:          structpb.NewBoolValue(st.Busy),
		fieldProjects:      structpb.NewNumberValue(float64(st.Projects)),
	}}
}

func statusFromStruct(s *structpb.Struct) *ports.DaemonStatus {
	f := s.GetFields()
	return &ports.DaemonStatus{
		Running:       f[fieldRunning].GetBoolValue(),
		PID:           int(f[fieldPID].GetNumberValue()),
		Uptime:        seconds(f[fieldUptime].GetNumberValue()),
		IdleRemaining: seconds(f[fieldIdleRemaining].GetNumberValue()),
		Busy:          f[fieldBusy].GetBoolValue(),
		Projects:      int(f[fieldProjects].GetNumberValue()),
	}
}
