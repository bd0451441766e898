package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/youta-t/flarc"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/logger"
)

// CommonFlags are accepted by every mr subcommand.
type CommonFlags struct {
	Config   string `flag:"config" help:"configuration file (.pkl, .yaml or .yml)"`
	LogLevel string `flag:"log-level" help:"debug, info, warn or error. Overrides the config file"`
}

// Task is a subcommand body with its configuration and logger resolved.
type Task[T any] func(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask adapts task to flarc. It finds CommonFlags among the positional
// params, loads the configuration file and builds a logger on stderr.
func NewTask[T any](task Task[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		commonFlags, found := Flags(pos)
		if !found {
			return errors.New("programming error: common flags not found")
		}

		cfg, err := config.Load(ctx, commonFlags.Config)
		if err != nil {
			if errors.Is(err, config.ErrInvalid) {
				return errors.Join(flarc.ErrUsage, err)
			}
			return err
		}

		level := cfg.LogLevel
		if commonFlags.LogLevel != "" {
			level = commonFlags.LogLevel
		}
		log, err := logger.NewWithWriter(cl.Stderr(), level)
		if err != nil {
			return fmt.Errorf("%w: %w", flarc.ErrUsage, err)
		}
		log = log.With(slog.String("command", cl.Fullname()))

		return task(ctx, log, cfg, cl, pos)
	}
}

// Flags returns the CommonFlags passed down by the root command group.
func Flags(pos []any) (CommonFlags, bool) {
	for _, p := range pos {
		if v, ok := p.(CommonFlags); ok {
			return v, true
		}
	}
	return CommonFlags{}, false
}
