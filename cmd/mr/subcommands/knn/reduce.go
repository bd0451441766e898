package knn

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/youta-t/flarc"

	api "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/api/v1"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/common"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
	knnjob "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/knn"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/server"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/streaming"
)

type ReduceFlags struct {
	K       int    `flag:"k" help:"number of neighbours that vote"`
	Remote  string `flag:"remote" help:"ask the shuffle server at this address for the prediction"`
	Subject string `flag:"subject" help:"identity presented to the shuffle server"`
	Reset   bool   `flag:"reset" help:"with --remote, empty the shuffle log after predicting"`
}

func NewReduce() (flarc.Command, error) {
	return flarc.NewCommand(
		"Predict the label of the query point from distance/label pairs.",
		ReduceFlags{},
		flarc.Args{},
		common.NewTask(ReduceTask),
		flarc.WithDescription(`
Reads "distance<TAB>label" lines from stdin, keeps the k nearest and prints

    Predicted label: <label>

With --remote the pairs already pushed to the shuffle server are used
instead. The k of a remote prediction is the server's.
`),
	)
}

func ReduceTask(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	cl flarc.Commandline[ReduceFlags],
	params []any,
) error {
	flags := cl.Flags()

	kcfg, err := jobConfig(cfg.KNN, "", flags.K)
	if err != nil {
		return err
	}

	if flags.Remote == "" {
		if flags.Reset {
			return fmt.Errorf("%w: --reset needs --remote", flarc.ErrUsage)
		}
		return streaming.RunReduce(ctx, knnjob.Job(kcfg), cl.Stdin(), cl.Stdout(), streaming.Options{Logger: log})
	}

	conn, err := server.Dial(flags.Remote)
	if err != nil {
		return err
	}
	defer conn.Close()

	if flags.Subject != "" {
		ctx = server.WithSubject(ctx, flags.Subject)
	}
	client := api.NewShuffleClient(conn)

	result, err := server.Predict(ctx, client)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cl.Stdout(), result); err != nil {
		return err
	}

	if flags.Reset {
		if err := server.Reset(ctx, client); err != nil {
			return err
		}
		log.Info("shuffle log reset", slog.String("remote", flags.Remote))
	}
	return nil
}
