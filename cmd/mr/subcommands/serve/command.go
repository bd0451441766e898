package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/youta-t/flarc"
	"golang.org/x/sync/errgroup"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/common"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/auth"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/filewatch"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/knn"
	mrlog "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/log"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/server"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/streaming"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/wordcount"
)

const shutdownTimeout = 5 * time.Second

type Flags struct {
	GrpcAddr  string `flag:"grpc-addr" help:"gRPC listen address. Overrides the config file"`
	HttpAddr  string `flag:"http-addr" help:"HTTP listen address. Overrides the config file"`
	DataDir   string `flag:"data-dir" help:"directory of the shuffle log. Overrides the config file"`
	Memory    bool   `flag:"memory" help:"keep the shuffle log in memory"`
	AclModel  string `flag:"acl-model" help:"casbin model file. Overrides the config file"`
	AclPolicy string `flag:"acl-policy" help:"casbin policy file. Overrides the config file"`
	Job       string `flag:"job" help:"reducer answering predictions: knn, wordcount or wordcount-count"`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Run the shuffle server.",
		Flags{Job: "knn"},
		flarc.Args{},
		common.NewTask(Task),
		flarc.WithDescription(`
Serves the shuffle log over gRPC and HTTP. Map workers push pairs to it
("mr knn map --remote") and a reducer asks it for the prediction
("mr knn reduce --remote").

When started with --config, the server restarts with the new
configuration whenever that file changes.
`),
	)
}

func Task(
	ctx context.Context,
	log *slog.Logger,
	cfg *config.Config,
	cl flarc.Commandline[Flags],
	params []any,
) error {
	cf, _ := common.Flags(params)
	return Run(ctx, log, cf.Config, cfg, cl.Flags())
}

func (f Flags) apply(cfg *config.Config) *config.Config {
	c := *cfg
	if f.GrpcAddr != "" {
		c.GrpcAddr = f.GrpcAddr
	}
	if f.HttpAddr != "" {
		c.HttpAddr = f.HttpAddr
	}
	if f.DataDir != "" {
		c.DataDir = f.DataDir
	}
	if f.AclModel != "" {
		c.AclModel = f.AclModel
	}
	if f.AclPolicy != "" {
		c.AclPolicy = f.AclPolicy
	}
	return &c
}

// JobFor returns the job whose reducer answers Predict.
func JobFor(name string, cfg config.KNN) (streaming.Job, error) {
	switch name {
	case "", "knn":
		return knn.Job(cfg), nil
	case "wordcount":
		return wordcount.UniqueJob(), nil
	case "wordcount-count":
		return wordcount.CountJob(), nil
	default:
		return streaming.Job{}, fmt.Errorf("%w: unknown job %q", flarc.ErrUsage, name)
	}
}

// Run serves until ctx is done. With a configPath the servers are restarted
// with the reloaded configuration every time that file changes.
func Run(ctx context.Context, log *slog.Logger, configPath string, cfg *config.Config, flags Flags) error {
	for {
		runCtx, stop := ctx, context.CancelFunc(func() {})
		if configPath != "" {
			var err error
			if runCtx, stop, err = filewatch.UntilChanged(ctx, configPath); err != nil {
				return err
			}
		}

		err := serve(runCtx, log, flags.apply(cfg), flags)
		changed := errors.Is(context.Cause(runCtx), filewatch.ErrChanged)
		stop()

		if ctx.Err() != nil {
			return nil
		}
		if !changed {
			return err
		}

		log.Info("config file changed, restarting", slog.String("config", configPath))
		if cfg, err = config.Load(ctx, configPath); err != nil {
			return err
		}
	}
}

type closer interface {
	Close() error
}

func openCommitLog(log *slog.Logger, cfg *config.Config, memory bool) (server.CommitLog, error) {
	if memory || cfg.DataDir == "" {
		log.Info("shuffle log kept in memory")
		return server.NewLog(), nil
	}

	dir := filepath.Join(cfg.DataDir, "shuffle")
	log.Info("shuffle log on disk", slog.String("dir", dir))
	return mrlog.New(dir, cfg.Segment)
}

func serve(ctx context.Context, log *slog.Logger, cfg *config.Config, flags Flags) error {
	job, err := JobFor(flags.Job, cfg.KNN)
	if err != nil {
		return err
	}

	commitLog, err := openCommitLog(log, cfg, flags.Memory)
	if err != nil {
		return err
	}
	if c, ok := commitLog.(closer); ok {
		defer c.Close()
	}

	scfg := &server.Config{
		CommitLog: commitLog,
		Reduce:    job,
		Logger:    log,
	}
	if cfg.AclModel != "" {
		a, err := auth.New(cfg.AclModel, cfg.AclPolicy)
		if err != nil {
			return err
		}
		scfg.Authorizer = a
	}

	gsrv, err := server.NewGRPCServer(scfg)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", cfg.GrpcAddr)
	if err != nil {
		return err
	}

	httpLis, err := net.Listen("tcp", cfg.HttpAddr)
	if err != nil {
		lis.Close()
		return err
	}
	hsrv := server.NewHTTPServer(cfg.HttpAddr, scfg)

	log.Info("shuffle server running",
		slog.String("job", job.Name),
		slog.String("grpc", lis.Addr().String()),
		slog.String("http", httpLis.Addr().String()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return gsrv.Serve(lis)
	})
	g.Go(func() error {
		if err := hsrv.Serve(httpLis); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		gsrv.Stop()

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return hsrv.Shutdown(sctx)
	})

	return g.Wait()
}
