package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	api "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/api/v1"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/auth"
)

// Metadata keys sent by shuffle clients. SubjectKey is what the Authorizer
// checks, WorkerKey only shows up in logs.
const (
	SubjectKey = "x-mr-subject"
	WorkerKey  = "x-mr-worker"
)

var actions = map[string]string{
	api.Shuffle_Produce_FullMethodName:       auth.ActionProduce,
	api.Shuffle_ProduceStream_FullMethodName: auth.ActionProduce,
	api.Shuffle_Consume_FullMethodName:       auth.ActionConsume,
	api.Shuffle_ConsumeStream_FullMethodName: auth.ActionConsume,
	api.Shuffle_Predict_FullMethodName:       auth.ActionPredict,
	api.Shuffle_Reset_FullMethodName:         auth.ActionReset,
}

// WithSubject attaches the caller's identity to an outgoing RPC context.
func WithSubject(ctx context.Context, subject string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, SubjectKey, subject)
}

// WithWorker names the map worker making an outgoing RPC.
func WithWorker(ctx context.Context, worker string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, WorkerKey, worker)
}

func incoming(ctx context.Context, key string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func subject(ctx context.Context) string {
	return incoming(ctx, SubjectKey)
}

func authorize(ctx context.Context, a Authorizer, method string) error {
	action, ok := actions[method]
	if !ok {
		return status.Errorf(codes.Unimplemented, "unknown method %s", method)
	}

	sub := subject(ctx)
	if sub == "" {
		return status.Error(codes.Unauthenticated, "missing "+SubjectKey+" metadata")
	}

	return a.Authorize(sub, auth.ObjectShuffle, action)
}

func authUnary(a Authorizer) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if err := authorize(ctx, a, info.FullMethod); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

func authStream(a Authorizer) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if err := authorize(ss.Context(), a, info.FullMethod); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}

func logCall(ctx context.Context, log *slog.Logger, method string, start time.Time, err error) {
	attrs := []any{
		slog.String("method", method),
		slog.String("subject", subject(ctx)),
		slog.String("worker", incoming(ctx, WorkerKey)),
		slog.Duration("elapsed", time.Since(start)),
		slog.String("code", status.Code(err).String()),
	}

	if err != nil && status.Code(err) != codes.OutOfRange {
		log.Warn("rpc failed", append(attrs, slog.Any("error", err))...)
		return
	}
	log.Debug("rpc", attrs...)
}

func logUnary(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logCall(ctx, log, info.FullMethod, start, err)
		return resp, err
	}
}

func logStream(log *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		logCall(ss.Context(), log, info.FullMethod, start, err)
		return err
	}
}

func invalidArgument(err error) error {
	return status.Error(codes.InvalidArgument, fmt.Sprintf("bad pair: %s", err))
}
