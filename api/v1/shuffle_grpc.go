package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The Shuffle service carries intermediate pair lines from mappers to the
// reducer. Its messages are protobuf well-known types:
//
//	service Shuffle {
//	  rpc Produce(google.protobuf.BytesValue) returns (google.protobuf.UInt64Value);
//	  rpc ProduceStream(stream google.protobuf.BytesValue) returns (stream google.protobuf.UInt64Value);
//	  rpc Consume(google.protobuf.UInt64Value) returns (google.protobuf.BytesValue);
//	  rpc ConsumeStream(google.protobuf.UInt64Value) returns (stream google.protobuf.BytesValue);
//	  rpc Predict(google.protobuf.Empty) returns (google.protobuf.StringValue);
//	  rpc Reset(google.protobuf.Empty) returns (google.protobuf.Empty);
//	}
const (
	Shuffle_Produce_FullMethodName       = "/shuffle.v1.Shuffle/Produce"
	Shuffle_ProduceStream_FullMethodName = "/shuffle.v1.Shuffle/ProduceStream"
	Shuffle_Consume_FullMethodName       = "/shuffle.v1.Shuffle/Consume"
	Shuffle_ConsumeStream_FullMethodName = "/shuffle.v1.Shuffle/ConsumeStream"
	Shuffle_Predict_FullMethodName       = "/shuffle.v1.Shuffle/Predict"
	Shuffle_Reset_FullMethodName         = "/shuffle.v1.Shuffle/Reset"
)

type ShuffleClient interface {
	Produce(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	ProduceStream(ctx context.Context, opts ...grpc.CallOption) (Shuffle_ProduceStreamClient, error)
	Consume(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	ConsumeStream(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (Shuffle_ConsumeStreamClient, error)
	Predict(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Reset(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type shuffleClient struct {
	cc grpc.ClientConnInterface
}

func NewShuffleClient(cc grpc.ClientConnInterface) ShuffleClient {
	return &shuffleClient{cc}
}

func (c *shuffleClient) Produce(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, Shuffle_Produce_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *shuffleClient) ProduceStream(ctx context.Context, opts ...grpc.CallOption) (Shuffle_ProduceStreamClient, error) {
	stream, err := c.cc.NewStream(ctx, &Shuffle_ServiceDesc.Streams[0], Shuffle_ProduceStream_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &shuffleProduceStreamClient{stream}, nil
}

type Shuffle_ProduceStreamClient interface {
	Send(*wrapperspb.BytesValue) error
	Recv() (*wrapperspb.UInt64Value, error)
	grpc.ClientStream
}

type shuffleProduceStreamClient struct {
	grpc.ClientStream
}

func (x *shuffleProduceStreamClient) Send(m *wrapperspb.BytesValue) error {
	return x.ClientStream.SendMsg(m)
}

func (x *shuffleProduceStreamClient) Recv() (*wrapperspb.UInt64Value, error) {
	m := new(wrapperspb.UInt64Value)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *shuffleClient) Consume(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, Shuffle_Consume_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *shuffleClient) ConsumeStream(ctx context.Context, in *wrapperspb.UInt64Value, opts ...grpc.CallOption) (Shuffle_ConsumeStreamClient, error) {
	stream, err := c.cc.NewStream(ctx, &Shuffle_ServiceDesc.Streams[1], Shuffle_ConsumeStream_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &shuffleConsumeStreamClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type Shuffle_ConsumeStreamClient interface {
	Recv() (*wrapperspb.BytesValue, error)
	grpc.ClientStream
}

type shuffleConsumeStreamClient struct {
	grpc.ClientStream
}

func (x *shuffleConsumeStreamClient) Recv() (*wrapperspb.BytesValue, error) {
	m := new(wrapperspb.BytesValue)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *shuffleClient) Predict(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, Shuffle_Predict_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *shuffleClient) Reset(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, Shuffle_Reset_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ShuffleServer is the server API for the Shuffle service.
// Implementations must embed UnimplementedShuffleServer.
type ShuffleServer interface {
	Produce(context.Context, *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error)
	ProduceStream(Shuffle_ProduceStreamServer) error
	Consume(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.BytesValue, error)
	ConsumeStream(*wrapperspb.UInt64Value, Shuffle_ConsumeStreamServer) error
	Predict(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Reset(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	mustEmbedUnimplementedShuffleServer()
}

type UnimplementedShuffleServer struct{}

func (UnimplementedShuffleServer) Produce(context.Context, *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Produce not implemented")
}
func (UnimplementedShuffleServer) ProduceStream(Shuffle_ProduceStreamServer) error {
	return status.Errorf(codes.Unimplemented, "method ProduceStream not implemented")
}
func (UnimplementedShuffleServer) Consume(context.Context, *wrapperspb.UInt64Value) (*wrapperspb.BytesValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Consume not implemented")
}
func (UnimplementedShuffleServer) ConsumeStream(*wrapperspb.UInt64Value, Shuffle_ConsumeStreamServer) error {
	return status.Errorf(codes.Unimplemented, "method ConsumeStream not implemented")
}
func (UnimplementedShuffleServer) Predict(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Predict not implemented")
}
func (UnimplementedShuffleServer) Reset(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Reset not implemented")
}
func (UnimplementedShuffleServer) mustEmbedUnimplementedShuffleServer() {}

func RegisterShuffleServer(s grpc.ServiceRegistrar, srv ShuffleServer) {
	s.RegisterService(&Shuffle_ServiceDesc, srv)
}

func _Shuffle_Produce_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShuffleServer).Produce(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Shuffle_Produce_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShuffleServer).Produce(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Shuffle_ProduceStream_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(ShuffleServer).ProduceStream(&shuffleProduceStreamServer{stream})
}

type Shuffle_ProduceStreamServer interface {
	Send(*wrapperspb.UInt64Value) error
	Recv() (*wrapperspb.BytesValue, error)
	grpc.ServerStream
}

type shuffleProduceStreamServer struct {
	grpc.ServerStream
}

func (x *shuffleProduceStreamServer) Send(m *wrapperspb.UInt64Value) error {
	return x.ServerStream.SendMsg(m)
}

func (x *shuffleProduceStreamServer) Recv() (*wrapperspb.BytesValue, error) {
	m := new(wrapperspb.BytesValue)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func _Shuffle_Consume_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.UInt64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShuffleServer).Consume(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Shuffle_Consume_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShuffleServer).Consume(ctx, req.(*wrapperspb.UInt64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func _Shuffle_ConsumeStream_Handler(srv any, stream grpc.ServerStream) error {
	m := new(wrapperspb.UInt64Value)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ShuffleServer).ConsumeStream(m, &shuffleConsumeStreamServer{stream})
}

type Shuffle_ConsumeStreamServer interface {
	Send(*wrapperspb.BytesValue) error
	grpc.ServerStream
}

type shuffleConsumeStreamServer struct {
	grpc.ServerStream
}

func (x *shuffleConsumeStreamServer) Send(m *wrapperspb.BytesValue) error {
	return x.ServerStream.SendMsg(m)
}

func _Shuffle_Predict_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShuffleServer).Predict(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Shuffle_Predict_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShuffleServer).Predict(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Shuffle_Reset_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShuffleServer).Reset(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Shuffle_Reset_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShuffleServer).Reset(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var Shuffle_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "shuffle.v1.Shuffle",
	HandlerType: (*ShuffleServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Produce",
			Handler:    _Shuffle_Produce_Handler,
		},
		{
			MethodName: "Consume",
			Handler:    _Shuffle_Consume_Handler,
		},
		{
			MethodName: "Predict",
			Handler:    _Shuffle_Predict_Handler,
		},
		{
			MethodName: "Reset",
			Handler:    _Shuffle_Reset_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "ProduceStream",
			Handler:       _Shuffle_ProduceStream_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
		{
			StreamName:    "ConsumeStream",
			Handler:       _Shuffle_ConsumeStream_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "api/v1/shuffle.proto",
}
