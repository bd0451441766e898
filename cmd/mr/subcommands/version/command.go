package version

import (
	"context"
	"fmt"

	"github.com/youta-t/flarc"
)

// Version is set at build time with -ldflags "-X .../version.Version=...".
var Version = "dev"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show version of this command.",
		struct{}{},
		flarc.Args{},
		Task,
	)
}

func Task(ctx context.Context, c flarc.Commandline[struct{}], a []any) error {
	_, err := fmt.Fprintln(c.Stdout(), Version)
	return err
}
