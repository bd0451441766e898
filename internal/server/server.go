// Package server exposes the shuffle log over gRPC and HTTP. Remote map
// workers append their intermediate pairs to it and a reducer asks it for
// the job result once every mapper is done.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	api "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/api/v1"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/logger"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/streaming"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/types"
)

// consumePollInterval is how long ConsumeStream waits for new records once
// it has caught up with the log.
const consumePollInterval = 50 * time.Millisecond

type CommitLog interface {
	streaming.Spill
	Reset() error
}

type Authorizer interface {
	Authorize(subject, object, action string) error
}

type Config struct {
	CommitLog CommitLog

	// Reduce is the job whose reducer answers Predict.
	Reduce streaming.Job

	// Authorizer is optional. Without it every caller is allowed.
	Authorizer Authorizer

	Logger *slog.Logger
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return logger.Null()
	}
	return c.Logger
}

// predict runs the reducer over everything in the log.
func (c *Config) predict() (string, error) {
	pairs, err := streaming.ReadAll(c.CommitLog)
	if err != nil {
		return "", err
	}
	if len(pairs) == 0 {
		return "", api.ErrNoPrediction{Type: api.ViolationEmptyShuffle, Reason: "shuffle log is empty"}
	}
	sort.Stable(types.ByKey(pairs))

	// pairs are checked on the way in, but a log reopened from disk may hold
	// pairs another job pushed
	var out strings.Builder
	if err := streaming.Reduce(c.Reduce, pairs, &out, streaming.Options{Logger: c.logger()}); err != nil {
		return "", api.ErrNoPrediction{Type: api.ViolationReduceFailed, Reason: err.Error()}
	}

	return strings.TrimSuffix(out.String(), "\n"), nil
}

type grpcServer struct {
	api.UnimplementedShuffleServer
	*Config
}

func NewGRPCServer(config *Config, opts ...grpc.ServerOption) (*grpc.Server, error) {
	srv, err := newServer(config)
	if err != nil {
		return nil, err
	}

	unary := []grpc.UnaryServerInterceptor{logUnary(config.logger())}
	stream := []grpc.StreamServerInterceptor{logStream(config.logger())}
	if config.Authorizer != nil {
		unary = append(unary, authUnary(config.Authorizer))
		stream = append(stream, authStream(config.Authorizer))
	}

	opts = append(opts,
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(stream...),
	)

	gsrv := grpc.NewServer(opts...)
	api.RegisterShuffleServer(gsrv, srv)

	return gsrv, nil
}

func newServer(cfg *Config) (*grpcServer, error) {
	if cfg.CommitLog == nil {
		return nil, errors.New("server: no commit log")
	}
	if cfg.Reduce.Reduce == nil {
		return nil, errors.New("server: no reduce job")
	}

	return &grpcServer{Config: cfg}, nil
}

func (srv *grpcServer) Produce(ctx context.Context, req *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error) {
	if _, err := srv.Reduce.ParsePair(string(req.GetValue())); err != nil {
		return nil, invalidArgument(err)
	}

	off, err := srv.CommitLog.Append(&api.Record{Value: req.GetValue()})
	if err != nil {
		return nil, err
	}

	return wrapperspb.UInt64(off), nil
}

func (srv *grpcServer) Consume(ctx context.Context, req *wrapperspb.UInt64Value) (*wrapperspb.BytesValue, error) {
	record, err := srv.CommitLog.Read(req.GetValue())
	if err != nil {
		return nil, err
	}

	return wrapperspb.Bytes(record.Value), nil
}

func (srv *grpcServer) ProduceStream(stream api.Shuffle_ProduceStreamServer) error {
	for {
		req, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		resp, err := srv.Produce(stream.Context(), req)
		if err != nil {
			return err
		}

		if err = stream.Send(resp); err != nil {
			return err
		}
	}
}

// ConsumeStream sends every record from the requested offset on and then
// follows the log until the client goes away.
func (srv *grpcServer) ConsumeStream(req *wrapperspb.UInt64Value, stream api.Shuffle_ConsumeStreamServer) error {
	off := req.GetValue()

	for {
		resp, err := srv.Consume(stream.Context(), wrapperspb.UInt64(off))
		if err != nil {
			if !errors.As(err, &api.ErrOffsetOutOfRange{}) {
				return err
			}

			select {
			case <-stream.Context().Done():
				return nil
			case <-time.After(consumePollInterval):
				continue
			}
		}

		if err = stream.Send(resp); err != nil {
			return err
		}
		off++
	}
}

func (srv *grpcServer) Predict(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	result, err := srv.predict()
	if err != nil {
		return nil, err
	}

	srv.logger().Info("predicted", slog.String("job", srv.Reduce.Name), slog.String("result", result))
	return wrapperspb.String(result), nil
}

func (srv *grpcServer) Reset(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := srv.CommitLog.Reset(); err != nil {
		return nil, err
	}

	srv.logger().Info("shuffle log reset")
	return &emptypb.Empty{}, nil
}
