package common

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	api "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/api/v1"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
	mrlog "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/log"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/server"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/streaming"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/types"
)

// Sink is where a map stage sends its pairs.
type Sink struct {
	Emit  streaming.EmitFunc
	Close func() error
}

// StdoutSink writes "key\tvalue" lines to w.
func StdoutSink(w io.Writer) Sink {
	bw := bufio.NewWriter(w)
	return Sink{
		Emit: func(kv types.KeyValue) error {
			if _, err := bw.WriteString(streaming.FormatLine(kv)); err != nil {
				return err
			}
			return bw.WriteByte('\n')
		},
		Close: bw.Flush,
	}
}

// RemoteSink pushes pairs to the shuffle server at addr, under a freshly
// generated worker name.
func RemoteSink(ctx context.Context, log *slog.Logger, addr, subject string) (Sink, error) {
	conn, err := server.Dial(addr)
	if err != nil {
		return Sink{}, err
	}

	worker := streaming.WorkerName()
	ctx = server.WithWorker(ctx, worker)
	if subject != "" {
		ctx = server.WithSubject(ctx, subject)
	}
	log.Debug("pushing to shuffle server", slog.String("remote", addr), slog.String("worker", worker))

	pusher, err := server.NewPusher(ctx, api.NewShuffleClient(conn))
	if err != nil {
		conn.Close()
		return Sink{}, err
	}

	return Sink{
		Emit: pusher.Push,
		Close: func() error {
			err := pusher.Close()
			if cerr := conn.Close(); err == nil {
				err = cerr
			}
			return err
		},
	}, nil
}

// MapInputs runs one map task per input file, or one over stdin when there
// are no inputs, sending every pair to emit.
func MapInputs(
	ctx context.Context,
	job streaming.Job,
	inputs []string,
	stdin io.Reader,
	progress io.Writer,
	opts streaming.Options,
	emit streaming.EmitFunc,
) (streaming.Stats, error) {
	if len(inputs) == 0 {
		return streaming.Map(ctx, job, stdin, opts, emit)
	}

	var total streaming.Stats
	for _, in := range inputs {
		r, err := streaming.OpenInput(in, progress)
		if err != nil {
			return total, err
		}

		st, err := streaming.Map(ctx, job, r, opts, emit)
		r.Close()

		total.Lines += st.Lines
		total.Emitted += st.Emitted
		total.Skipped += st.Skipped
		if err != nil {
			return total, fmt.Errorf("%s: %w", in, err)
		}
	}

	return total, nil
}

// RunLocal runs job over inputs with an on-disk spill. The spill goes to a
// new "mr-spill-*" directory, created inside spillDir and kept when spillDir
// is given, or in the system temp dir and removed afterwards otherwise.
func RunLocal(
	ctx context.Context,
	log *slog.Logger,
	seg config.Segment,
	job streaming.Job,
	inputs []string,
	spillDir string,
	workers int,
	progress io.Writer,
	opts streaming.Options,
	w io.Writer,
) error {
	keep := spillDir != ""
	if keep {
		if err := os.MkdirAll(spillDir, 0o755); err != nil {
			return err
		}
	}

	dir, err := os.MkdirTemp(spillDir, "mr-spill-")
	if err != nil {
		return err
	}
	if !keep {
		defer os.RemoveAll(dir)
	}

	spill, err := mrlog.New(dir, seg)
	if err != nil {
		return err
	}
	defer spill.Close()

	p := &streaming.Pipeline{
		Job:      job,
		Spill:    spill,
		Workers:  workers,
		Options:  opts,
		Progress: progress,
	}

	st, err := p.Run(ctx, inputs, w)
	if err != nil {
		return err
	}

	log.Info("job finished",
		slog.String("job", job.Name),
		slog.Int("inputs", len(inputs)),
		slog.Int("lines", st.Lines),
		slog.Int("emitted", st.Emitted),
		slog.Int("skipped", st.Skipped),
		slog.String("spill", dir),
	)

	return nil
}
