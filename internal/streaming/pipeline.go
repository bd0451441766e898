package streaming

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/types"
)

// Pipeline runs a whole job in process: one map task per input file,
// spilled into Spill, followed by a single reduce over the sorted spill.
type Pipeline struct {
	Job     Job
	Spill   Spill
	Workers int
	Options Options

	// Progress, when set, receives one progress bar per input file.
	Progress io.Writer
}

func (p *Pipeline) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.NumCPU()
}

func (p *Pipeline) Run(ctx context.Context, inputs []string, w io.Writer) (Stats, error) {
	var (
		total Stats
		mu    sync.Mutex
	)
	log := p.Options.logger().With(slog.String("job", p.Job.Name))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())

	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			st, err := p.mapFile(gctx, input)

			mu.Lock()
			total.add(st)
			mu.Unlock()

			if err != nil {
				return fmt.Errorf("map task %d (%s): %w", i, input, err)
			}
			log.Debug("map task done",
				slog.Int("task", i),
				slog.String("input", input),
				slog.Int("emitted", st.Emitted),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return total, err
	}

	pairs, err := ReadAll(p.Spill)
	if err != nil {
		return total, fmt.Errorf("read spill: %w", err)
	}
	sort.Stable(types.ByKey(pairs))

	log.Info("map phase done",
		slog.Int("tasks", len(inputs)),
		slog.Int("lines", total.Lines),
		slog.Int("pairs", len(pairs)),
		slog.Int("skipped", total.Skipped),
	)

	return total, Reduce(p.Job, pairs, w, p.Options)
}

func (p *Pipeline) mapFile(ctx context.Context, path string) (Stats, error) {
	r, err := OpenInput(path, p.Progress)
	if err != nil {
		return Stats{}, err
	}
	defer r.Close()

	return Map(ctx, p.Job, r, p.Options, func(kv types.KeyValue) error {
		return appendPair(p.Spill, kv)
	})
}
