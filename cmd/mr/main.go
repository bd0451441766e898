package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/youta-t/flarc"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/common"
	subknn "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/knn"
	subserve "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/serve"
	subconfig "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/showconfig"
	subver "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/version"
	subwc "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/wordcount"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	mr, err := newCommand()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(flarc.Run(ctx, mr, flarc.WithHelp(true)))
}

func newCommand() (flarc.Command, error) {
	knn, err := subknn.New()
	if err != nil {
		return nil, err
	}
	wc, err := subwc.New()
	if err != nil {
		return nil, err
	}
	serve, err := subserve.New()
	if err != nil {
		return nil, err
	}
	cfg, err := subconfig.New()
	if err != nil {
		return nil, err
	}
	version, err := subver.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Streaming MapReduce jobs: k-nearest-neighbours and word counting.",
		common.CommonFlags{},
		flarc.WithSubcommand("knn", knn),
		flarc.WithSubcommand("wordcount", wc),
		flarc.WithSubcommand("serve", serve),
		flarc.WithSubcommand("config", cfg),
		flarc.WithSubcommand("version", version),
	)
}
