package wordcount_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/common"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/internal/commandline"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/wordcount"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/logger"
)

var params = []any{common.CommonFlags{}, struct{}{}}

func stage(t *testing.T, task common.Task[wordcount.StageFlags], flags wordcount.StageFlags, stdin string) string {
	t.Helper()

	stdout := new(strings.Builder)
	cl := commandline.MockCommandline[wordcount.StageFlags]{
		Fullname_: "mr wordcount",
		Stdin_:    strings.NewReader(stdin),
		Stdout_:   stdout,
		Stderr_:   new(strings.Builder),
		Flags_:    flags,
		Args_:     map[string][]string{},
	}

	require.NoError(t, common.NewTask(task)(context.Background(), cl, params))
	return stdout.String()
}

func TestStages(t *testing.T) {
	mapped := stage(t, wordcount.MapTask, wordcount.StageFlags{}, "to be, or not to be\n")
	require.Equal(t, "to\t1\nbe\t1\n,\t1\nor\t1\nnot\t1\nto\t1\nbe\t1\n", mapped)

	combined := stage(t, wordcount.CombineTask, wordcount.StageFlags{}, mapped)
	require.Equal(t, ",\t1\nbe\t1\nnot\t1\nor\t1\nto\t1\n", combined)

	unique := stage(t, wordcount.ReduceTask, wordcount.StageFlags{}, combined)
	require.Equal(t, ",\nbe\nnot\nor\nto\n", unique)

	counted := stage(t, wordcount.ReduceTask, wordcount.StageFlags{Count: true}, mapped)
	require.Equal(t, ", 1\nbe 2\nnot 1\nor 1\nto 2\n", counted)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("to be\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("or not to be\n"), 0o644))

	for scenario, tc := range map[string]struct {
		flags wordcount.RunFlags
		want  string
	}{
		"unique":           {flags: wordcount.RunFlags{}, want: "be\nnot\nor\nto\n"},
		"count":            {flags: wordcount.RunFlags{Count: true}, want: "be 2\nnot 1\nor 1\nto 2\n"},
		"count, combined":  {flags: wordcount.RunFlags{Count: true, Combine: true, Workers: 1}, want: "be 2\nnot 1\nor 1\nto 2\n"},
		"unique, combined": {flags: wordcount.RunFlags{Combine: true}, want: "be\nnot\nor\nto\n"},
	} {
		t.Run(scenario, func(t *testing.T) {
			stdout := new(strings.Builder)
			cl := commandline.MockCommandline[wordcount.RunFlags]{
				Fullname_: "mr wordcount run",
				Stdout_:   stdout,
				Stderr_:   new(strings.Builder),
				Flags_:    tc.flags,
				Args_:     map[string][]string{wordcount.ARG_FILE: {a, b}},
			}

			err := wordcount.RunTask(context.Background(), logger.Null(), config.Default(), cl, params)
			require.NoError(t, err)
			require.Equal(t, tc.want, stdout.String())
		})
	}
}
