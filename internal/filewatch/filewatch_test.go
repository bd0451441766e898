package filewatch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/filewatch"
)

func waitDone(t *testing.T, ctx context.Context) {
	t.Helper()

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled")
	}
}

func TestUntilChanged(t *testing.T) {
	for scenario, touch := range map[string]func(t *testing.T, path string){
		"written": func(t *testing.T, path string) {
			require.NoError(t, os.WriteFile(path, []byte("k: 5\n"), 0644))
		},
		"removed": func(t *testing.T, path string) {
			require.NoError(t, os.Remove(path))
		},
		"renamed": func(t *testing.T, path string) {
			require.NoError(t, os.Rename(path, path+".bak"))
		},
	} {
		t.Run(scenario, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte("k: 3\n"), 0644))

			ctx, cancel, err := filewatch.UntilChanged(context.Background(), path)
			require.NoError(t, err)
			defer cancel()
			require.NoError(t, ctx.Err())

			touch(t, path)

			waitDone(t, ctx)
			require.ErrorIs(t, context.Cause(ctx), filewatch.ErrChanged)
		})
	}
}

func TestUntilChangedCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	ctx, cancel, err := filewatch.UntilChanged(context.Background(), path)
	require.NoError(t, err)

	cancel()
	waitDone(t, ctx)
	require.ErrorIs(t, context.Cause(ctx), context.Canceled)
}

func TestUntilChangedMissingFile(t *testing.T) {
	ctx, cancel, err := filewatch.UntilChanged(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	require.Nil(t, ctx)
	require.Nil(t, cancel)
}
