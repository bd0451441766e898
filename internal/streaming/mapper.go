package streaming

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/types"
)

// EmitFunc receives the pairs produced by a map task.
type EmitFunc func(kv types.KeyValue) error

// Map runs job.Map over every line of r, in input order, and hands the
// resulting pairs to emit. With opts.Combine the pairs of the whole task
// are combined before being emitted.
func Map(ctx context.Context, job Job, r io.Reader, opts Options, emit EmitFunc) (Stats, error) {
	var st Stats
	log := opts.logger().With(slog.String("job", job.Name))

	combine := opts.Combine && job.Combine != nil
	var buffered []types.KeyValue

	s := newScanner(r)
	for n := 1; s.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return st, err
		}

		line := s.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		st.Lines++

		kvs, err := job.Map(line)
		if err != nil {
			lerr := &LineError{Line: n, Err: err}
			if !opts.SkipMalformed {
				return st, lerr
			}

			log.Warn("skip malformed record", slog.Int("line", n), slog.Any("error", err))
			st.Skipped++
			continue
		}

		if combine {
			buffered = append(buffered, kvs...)
			continue
		}

		for _, kv := range kvs {
			if err := emit(kv); err != nil {
				return st, err
			}
			st.Emitted++
		}
	}

	if err := s.Err(); err != nil {
		return st, err
	}

	if combine {
		combined, err := job.Combine(buffered)
		if err != nil {
			return st, err
		}
		log.Debug("combined map output",
			slog.Int("before", len(buffered)),
			slog.Int("after", len(combined)),
		)

		for _, kv := range combined {
			if err := emit(kv); err != nil {
				return st, err
			}
			st.Emitted++
		}
	}

	return st, nil
}

// RunMap is a streaming map stage: lines of r in, "key\tvalue" lines out.
func RunMap(ctx context.Context, job Job, r io.Reader, w io.Writer, opts Options) (Stats, error) {
	bw := bufio.NewWriter(w)

	st, err := Map(ctx, job, r, opts, func(kv types.KeyValue) error {
		if _, err := bw.WriteString(FormatLine(kv)); err != nil {
			return err
		}
		return bw.WriteByte('\n')
	})

	if ferr := bw.Flush(); err == nil {
		err = ferr
	}

	return st, err
}

// RunCombine is a standalone combiner stage over intermediate lines.
func RunCombine(ctx context.Context, job Job, r io.Reader, w io.Writer) error {
	if job.Combine == nil {
		return errors.New("job " + job.Name + " has no combiner")
	}

	pairs, err := ReadPairs(ctx, r)
	if err != nil {
		return err
	}

	combined, err := job.Combine(pairs)
	if err != nil {
		return err
	}

	return writePairs(w, combined)
}
