package server

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	api "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/api/v1"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/streaming"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/types"
)

// Dial opens a plaintext connection to a shuffle server.
func Dial(addr string) (*grpc.ClientConn, error) {
	return grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

// Pusher appends pairs to a remote shuffle log over one ProduceStream.
type Pusher struct {
	stream api.Shuffle_ProduceStreamClient
	pushed int
}

func NewPusher(ctx context.Context, client api.ShuffleClient) (*Pusher, error) {
	stream, err := client.ProduceStream(ctx)
	if err != nil {
		return nil, err
	}

	return &Pusher{stream: stream}, nil
}

// Push sends kv and waits until the server has stored it.
func (p *Pusher) Push(kv types.KeyValue) error {
	if err := p.stream.Send(wrapperspb.Bytes([]byte(streaming.FormatLine(kv)))); err != nil {
		return fmt.Errorf("push pair %d: %w", p.pushed, err)
	}

	if _, err := p.stream.Recv(); err != nil {
		return fmt.Errorf("push pair %d: %w", p.pushed, err)
	}

	p.pushed++
	return nil
}

func (p *Pusher) Pushed() int {
	return p.pushed
}

func (p *Pusher) Close() error {
	return p.stream.CloseSend()
}

// PushPairs sends every pair in kvs.
func PushPairs(ctx context.Context, client api.ShuffleClient, kvs []types.KeyValue) error {
	p, err := NewPusher(ctx, client)
	if err != nil {
		return err
	}

	for _, kv := range kvs {
		if err := p.Push(kv); err != nil {
			return err
		}
	}

	return p.Close()
}

// Predict asks the server to reduce everything pushed so far.
func Predict(ctx context.Context, client api.ShuffleClient) (string, error) {
	resp, err := client.Predict(ctx, &emptypb.Empty{})
	if err != nil {
		return "", err
	}

	return resp.GetValue(), nil
}

func Reset(ctx context.Context, client api.ShuffleClient) error {
	_, err := client.Reset(ctx, &emptypb.Empty{})
	return err
}
