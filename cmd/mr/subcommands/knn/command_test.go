package knn_test

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/youta-t/flarc"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/common"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/internal/commandline"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/knn"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
	knnjob "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/knn"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/server"
)

const irisInput = `5.0,3.4,1.4,0.2,"setosa"
6.0,3.0,4.0,1.0,"versicolor"
5.2,3.6,1.5,0.3,"setosa"
`

func params(cf common.CommonFlags) []any {
	return []any{cf, struct{}{}}
}

func runMap(t *testing.T, flags knn.MapFlags, args []string, stdin string, cf common.CommonFlags) (string, error) {
	t.Helper()

	stdout := new(strings.Builder)
	cl := commandline.MockCommandline[knn.MapFlags]{
		Fullname_: "mr knn map",
		Stdin_:    strings.NewReader(stdin),
		Stdout_:   stdout,
		Stderr_:   new(strings.Builder),
		Flags_:    flags,
		Args_:     map[string][]string{knn.ARG_FILE: args},
	}

	err := common.NewTask(knn.MapTask)(context.Background(), cl, params(cf))
	return stdout.String(), err
}

func runReduce(t *testing.T, flags knn.ReduceFlags, stdin string) (string, error) {
	t.Helper()

	stdout := new(strings.Builder)
	cl := commandline.MockCommandline[knn.ReduceFlags]{
		Fullname_: "mr knn reduce",
		Stdin_:    strings.NewReader(stdin),
		Stdout_:   stdout,
		Stderr_:   new(strings.Builder),
		Flags_:    flags,
		Args_:     map[string][]string{},
	}

	err := common.NewTask(knn.ReduceTask)(context.Background(), cl, params(common.CommonFlags{}))
	return stdout.String(), err
}

func TestMapReduce(t *testing.T) {
	mapped, err := runMap(t, knn.MapFlags{}, nil, irisInput, common.CommonFlags{})
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(mapped), "\n"), 3)

	got, err := runReduce(t, knn.ReduceFlags{}, mapped)
	require.NoError(t, err)
	require.Equal(t, "Predicted label: setosa\n", got)

	got, err = runReduce(t, knn.ReduceFlags{K: 1}, "0.3\tversicolor\n0.1\tvirginica\n0.2\tversicolor\n")
	require.NoError(t, err)
	require.Equal(t, "Predicted label: virginica\n", got)
}

func TestMapFlags(t *testing.T) {
	t.Run("query override", func(t *testing.T) {
		mapped, err := runMap(t, knn.MapFlags{Query: "5.0,3.4,1.4,0.2"}, nil, irisInput, common.CommonFlags{})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(mapped, "0\tsetosa\n"))
	})

	t.Run("bad query is a usage error", func(t *testing.T) {
		_, err := runMap(t, knn.MapFlags{Query: "1,two"}, nil, irisInput, common.CommonFlags{})
		require.ErrorIs(t, err, flarc.ErrUsage)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := runMap(t, knn.MapFlags{Query: "1,2"}, nil, irisInput, common.CommonFlags{})
		require.ErrorIs(t, err, knnjob.ErrArity)
	})

	t.Run("combine keeps k pairs", func(t *testing.T) {
		mapped, err := runMap(t, knn.MapFlags{Combine: true, K: 2}, nil, irisInput, common.CommonFlags{})
		require.NoError(t, err)
		require.Len(t, strings.Split(strings.TrimSpace(mapped), "\n"), 2)
		require.NotContains(t, mapped, "versicolor")
	})

	t.Run("skip malformed", func(t *testing.T) {
		mapped, err := runMap(t, knn.MapFlags{SkipMalformed: true}, nil, "header,a,b,c,d\n"+irisInput, common.CommonFlags{})
		require.NoError(t, err)
		require.Len(t, strings.Split(strings.TrimSpace(mapped), "\n"), 3)
	})

	t.Run("input files", func(t *testing.T) {
		dir := t.TempDir()
		a := filepath.Join(dir, "a.csv")
		b := filepath.Join(dir, "b.csv")
		lines := strings.SplitAfter(irisInput, "\n")
		require.NoError(t, os.WriteFile(a, []byte(lines[0]+lines[1]), 0o644))
		require.NoError(t, os.WriteFile(b, []byte(lines[2]), 0o644))

		mapped, err := runMap(t, knn.MapFlags{Progress: true}, []string{a, b}, "", common.CommonFlags{})
		require.NoError(t, err)
		require.Len(t, strings.Split(strings.TrimSpace(mapped), "\n"), 3)
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mr.yaml")
		require.NoError(t, os.WriteFile(path, []byte("knn:\n  queryPoint: [6.0, 3.0, 4.0, 1.0]\n"), 0o644))

		mapped, err := runMap(t, knn.MapFlags{}, nil, irisInput, common.CommonFlags{Config: path})
		require.NoError(t, err)
		require.Contains(t, mapped, "0\tversicolor\n")
	})
}

func TestReduceEmpty(t *testing.T) {
	_, err := runReduce(t, knn.ReduceFlags{}, "")
	require.ErrorIs(t, err, knnjob.ErrNoNeighbors)

	_, err = runReduce(t, knn.ReduceFlags{Reset: true}, "")
	require.ErrorIs(t, err, flarc.ErrUsage)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for i, line := range strings.SplitAfter(strings.TrimSpace(irisInput), "\n") {
		p := filepath.Join(dir, "part-"+string(rune('a'+i)))
		require.NoError(t, os.WriteFile(p, []byte(line), 0o644))
		inputs = append(inputs, p)
	}
	spill := filepath.Join(dir, "spill")

	stdout := new(strings.Builder)
	cl := commandline.MockCommandline[knn.RunFlags]{
		Fullname_: "mr knn run",
		Stdout_:   stdout,
		Stderr_:   new(strings.Builder),
		Flags_:    knn.RunFlags{Workers: 2, SpillDir: spill},
		Args_:     map[string][]string{knn.ARG_FILE: inputs},
	}

	err := common.NewTask(knn.RunTask)(context.Background(), cl, params(common.CommonFlags{}))
	require.NoError(t, err)
	require.Equal(t, "Predicted label: setosa\n", stdout.String())

	entries, err := os.ReadDir(spill)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
}

func TestRemote(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := config.Default()
	commitLog := server.NewLog()
	srv, err := server.NewGRPCServer(&server.Config{
		CommitLog: commitLog,
		Reduce:    knnjob.Job(cfg.KNN),
	})
	require.NoError(t, err)
	go srv.Serve(lis)
	defer srv.Stop()

	addr := lis.Addr().String()

	out, err := runMap(t, knn.MapFlags{Remote: addr, Subject: "map-1"}, nil, irisInput, common.CommonFlags{})
	require.NoError(t, err)
	require.Empty(t, out)

	got, err := runReduce(t, knn.ReduceFlags{Remote: addr, Reset: true}, "")
	require.NoError(t, err)
	require.Equal(t, "Predicted label: setosa\n", got)

	_, err = commitLog.Read(0)
	require.Error(t, err, "log must be empty after --reset")

	_, err = runReduce(t, knn.ReduceFlags{Remote: addr}, "")
	require.Error(t, err)
	require.False(t, errors.Is(err, flarc.ErrUsage))
}
