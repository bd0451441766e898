package knn

import (
	"fmt"

	"github.com/youta-t/flarc"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
	knnjob "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/knn"
)

const ARG_FILE = "FILE"

func New() (flarc.Command, error) {
	mapper, err := NewMap()
	if err != nil {
		return nil, err
	}
	reducer, err := NewReduce()
	if err != nil {
		return nil, err
	}
	run, err := NewRun()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"k-nearest-neighbours classification as a streaming MapReduce job.",
		struct{}{},
		flarc.WithSubcommand("map", mapper),
		flarc.WithSubcommand("reduce", reducer),
		flarc.WithSubcommand("run", run),
	)
}

// jobConfig applies --query and --k on top of the configured values.
func jobConfig(base config.KNN, query string, k int) (config.KNN, error) {
	cfg := base

	if query != "" {
		p, err := knnjob.ParsePoint(query)
		if err != nil {
			return config.KNN{}, fmt.Errorf("%w: --query: %w", flarc.ErrUsage, err)
		}
		cfg.QueryPoint = p
	}

	if k < 0 {
		return config.KNN{}, fmt.Errorf("%w: --k must be positive, got %d", flarc.ErrUsage, k)
	}
	if k > 0 {
		cfg.K = k
	}

	return cfg, nil
}
