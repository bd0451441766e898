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

type MapFlags struct {
	Query         string `flag:"query" help:"comma separated query point, e.g. 5.1,3.5,1.4,0.2"`
	K             int    `flag:"k" help:"number of neighbours kept by --combine"`
	Combine       bool   `flag:"combine" help:"emit only the k nearest pairs of each input"`
	SkipMalformed bool   `flag:"skip-malformed" help:"log and skip records that cannot be parsed"`
	Progress      bool   `flag:"progress" help:"draw a progress bar per input file on stderr"`
	Remote        string `flag:"remote" help:"push pairs to the shuffle server at this address instead of stdout"`
	Subject       string `flag:"subject" help:"identity presented to the shuffle server"`
}

func NewMap() (flarc.Command, error) {
	return flarc.NewCommand(
		"Emit the distance of every record to the query point.",
		MapFlags{},
		flarc.Args{
			{
				Name: ARG_FILE, Required: false, Repeatable: true,
				Help: "CSV files of features followed by a label. Reads stdin when omitted.",
			},
		},
		common.NewTask(MapTask),
		flarc.WithDescription(`
Reads records like

    5.0,3.4,1.4,0.2,"setosa"

and writes one "distance<TAB>label" line per record to stdout, or pushes
them to a shuffle server with --remote.
`),
	)
}

func MapTask(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	cl flarc.Commandline[MapFlags],
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

	sink := common.StdoutSink(cl.Stdout())
	if flags.Remote != "" {
		if sink, err = common.RemoteSink(ctx, log, flags.Remote, flags.Subject); err != nil {
			return err
		}
	}

	var progress io.Writer
	if flags.Progress {
		progress = cl.Stderr()
	}

	st, err := common.MapInputs(ctx, knnjob.Job(kcfg), cl.Args()[ARG_FILE], cl.Stdin(), progress, opts, sink.Emit)
	if cerr := sink.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	log.Debug("map done",
		slog.Int("lines", st.Lines),
		slog.Int("emitted", st.Emitted),
		slog.Int("skipped", st.Skipped),
	)
	return nil
}
