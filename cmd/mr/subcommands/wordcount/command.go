package wordcount

import (
	"context"
	"io"
	"log/slog"

	"github.com/youta-t/flarc"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/common"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/streaming"
	wc "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/wordcount"
)

const ARG_FILE = "FILE"

// StageFlags are shared by the map, combine and reduce stages.
type StageFlags struct {
	Count bool `flag:"count" help:"count occurrences instead of listing unique words"`
}

type RunFlags struct {
	Count    bool   `flag:"count" help:"count occurrences instead of listing unique words"`
	Combine  bool   `flag:"combine" help:"combine the pairs of every map task"`
	Progress bool   `flag:"progress" help:"draw a progress bar per input file on stderr"`
	Workers  int    `flag:"workers" help:"map tasks run at once. 0 means one per CPU"`
	SpillDir string `flag:"spill-dir" help:"keep the intermediate pairs in this directory"`
}

func job(count bool) streaming.Job {
	if count {
		return wc.CountJob()
	}
	return wc.UniqueJob()
}

func New() (flarc.Command, error) {
	mapper, err := flarc.NewCommand(
		"Split stdin into tokens, one \"token<TAB>1\" line each.",
		StageFlags{},
		flarc.Args{},
		common.NewTask(MapTask),
	)
	if err != nil {
		return nil, err
	}

	combiner, err := flarc.NewCommand(
		"Collapse the pairs of one map task.",
		StageFlags{},
		flarc.Args{},
		common.NewTask(CombineTask),
	)
	if err != nil {
		return nil, err
	}

	reducer, err := flarc.NewCommand(
		"List every distinct word, or count them with --count.",
		StageFlags{},
		flarc.Args{},
		common.NewTask(ReduceTask),
	)
	if err != nil {
		return nil, err
	}

	run, err := flarc.NewCommand(
		"Run map and reduce over input files in this process.",
		RunFlags{},
		flarc.Args{
			{
				Name: ARG_FILE, Required: true, Repeatable: true,
				Help: "text files, one map task each",
			},
		},
		common.NewTask(RunTask),
	)
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Word listing and counting as a streaming MapReduce job.",
		struct{}{},
		flarc.WithSubcommand("map", mapper),
		flarc.WithSubcommand("combine", combiner),
		flarc.WithSubcommand("reduce", reducer),
		flarc.WithSubcommand("run", run),
	)
}

func MapTask(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	cl flarc.Commandline[StageFlags],
	params []any,
) error {
	_, err := streaming.RunMap(ctx, job(cl.Flags().Count), cl.Stdin(), cl.Stdout(), streaming.Options{Logger: log})
	return err
}

func CombineTask(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	cl flarc.Commandline[StageFlags],
	params []any,
) error {
	return streaming.RunCombine(ctx, job(cl.Flags().Count), cl.Stdin(), cl.Stdout())
}

func ReduceTask(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	cl flarc.Commandline[StageFlags],
	params []any,
) error {
	return streaming.RunReduce(ctx, job(cl.Flags().Count), cl.Stdin(), cl.Stdout(), streaming.Options{Logger: log})
}

func RunTask(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	cl flarc.Commandline[RunFlags],
	params []any,
) error {
	flags := cl.Flags()

	var progress io.Writer
	if flags.Progress {
		progress = cl.Stderr()
	}

	return common.RunLocal(
		ctx, log, cfg.Segment, job(flags.Count),
		cl.Args()[ARG_FILE], flags.SpillDir, flags.Workers,
		progress, streaming.Options{Combine: flags.Combine, Logger: log}, cl.Stdout(),
	)
}
