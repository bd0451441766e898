package knn

import (
	"context"
	"io"
	"log/slog"

	"github.com/youta-t/flarc"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/common"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
	knnjob "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/knn"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/streaming"
)

type RunFlags struct {
	Query         string `flag:"query" help:"comma separated query point, e.g. 5.1,3.5,1.4,0.2"`
	K             int    `flag:"k" help:"number of neighbours that vote"`
	Combine       bool   `flag:"combine" help:"reduce every map task to its k nearest pairs"`
	SkipMalformed bool   `flag:"skip-malformed" help:"log and skip records that cannot be parsed"`
	Progress      bool   `flag:"progress" help:"draw a progress bar per input file on stderr"`
	Workers       int    `flag:"workers" help:"map tasks run at once. 0 means one per CPU"`
	SpillDir      string `flag:"spill-dir" help:"keep the intermediate pairs in this directory"`
}

func NewRun() (flarc.Command, error) {
	return flarc.NewCommand(
		"Run map and reduce over input files in this process.",
		RunFlags{},
		flarc.Args{
			{
				Name: ARG_FILE, Required: true, Repeatable: true,
				Help: "CSV files of features followed by a label. One map task each.",
			},
		},
		common.NewTask(RunTask),
	)
}

func RunTask(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	cl flarc.Commandline[RunFlags],
	params []any,
) error {
	flags := cl.Flags()

	kcfg, err := jobConfig(cfg.KNN, flags.Query, flags.K)
	if err != nil {
		return err
	}

	opts := streaming.Options{
		SkipMalformed: flags.SkipMalformed || kcfg.SkipMalformed,
		Combine:       flags.Combine || kcfg.Combine,
		Logger:        log,
	}

	var progress io.Writer
	if flags.Progress {
		progress = cl.Stderr()
	}

	return common.RunLocal(
		ctx, log, cfg.Segment, knnjob.Job(kcfg),
		cl.Args()[ARG_FILE], flags.SpillDir, flags.Workers,
		progress, opts, cl.Stdout(),
	)
}
