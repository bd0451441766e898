package streaming

import (
	"log/slog"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/logger"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/types"
)

// MapFunc turns one input line into zero or more intermediate pairs.
type MapFunc func(line string) ([]types.KeyValue, error)

// CombineFunc shrinks the pairs of a single map task before they are
// shuffled. It must not change what the reducer produces.
type CombineFunc func(pairs []types.KeyValue) ([]types.KeyValue, error)

// ReduceFunc aggregates every pair of the job into output lines.
type ReduceFunc func(pairs []types.KeyValue) ([]string, error)

// CheckFunc rejects an intermediate pair that Reduce would fail on.
type CheckFunc func(kv types.KeyValue) error

type Job struct {
	Name    string
	Map     MapFunc
	Combine CombineFunc
	Reduce  ReduceFunc

	// Check is optional. The shuffle server runs it on every pushed pair so
	// that a bad pair is refused instead of breaking every later reduce.
	Check CheckFunc
}

// ParsePair parses an intermediate line and runs job.Check on it.
func (job Job) ParsePair(line string) (types.KeyValue, error) {
	kv, err := ParseLine(line)
	if err != nil {
		return types.KeyValue{}, err
	}

	if job.Check != nil {
		if err := job.Check(kv); err != nil {
			return types.KeyValue{}, err
		}
	}

	return kv, nil
}

type Options struct {
	// SkipMalformed logs and counts input lines rejected by Map instead of
	// failing the task.
	SkipMalformed bool

	// Combine runs Job.Combine over the output of every map task.
	Combine bool

	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logger.Null()
	}
	return o.Logger
}

type Stats struct {
	Lines   int
	Emitted int
	Skipped int
}

func (s *Stats) add(o Stats) {
	s.Lines += o.Lines
	s.Emitted += o.Emitted
	s.Skipped += o.Skipped
}
