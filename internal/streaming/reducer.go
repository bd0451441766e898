package streaming

import (
	"context"
	"io"
	"log/slog"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/types"
)

// RunReduce is a streaming reduce stage. It materializes every pair of r
// before calling job.Reduce.
func RunReduce(ctx context.Context, job Job, r io.Reader, w io.Writer, opts Options) error {
	pairs, err := ReadPairs(ctx, r)
	if err != nil {
		return err
	}

	return Reduce(job, pairs, w, opts)
}

// Reduce runs job.Reduce over pairs and writes the output lines.
func Reduce(job Job, pairs []types.KeyValue, w io.Writer, opts Options) error {
	opts.logger().Debug("reduce",
		slog.String("job", job.Name),
		slog.Int("pairs", len(pairs)),
	)

	lines, err := job.Reduce(pairs)
	if err != nil {
		return err
	}

	return writeLines(w, lines)
}
