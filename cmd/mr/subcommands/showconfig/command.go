package showconfig

import (
	"context"
	"log/slog"

	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/common"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Print the effective configuration as YAML.",
		struct{}{},
		flarc.Args{},
		common.NewTask(Task),
		flarc.WithDescription(`
Loads the file given with --config (or the defaults when it is omitted) and
prints the result, so pkl and YAML files can be checked before "mr serve".
`),
	)
}

func Task(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	cl flarc.Commandline[struct{}],
	_ []any,
) error {
	enc := yaml.NewEncoder(cl.Stdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
