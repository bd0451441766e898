package wordcount

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/streaming"
)

func TestTokenize(t *testing.T) {
	for line, want := range map[string][]string{
		"Hello, world!":          {"Hello", ",", "world", "!"},
		"  it's 42 o'clock...  ": {"it", "'", "s", "42", "o", "'", "clock", "..."},
		"":                       nil,
	} {
		require.Equal(t, want, Tokenize(line), line)
	}
}

const text = "the cat\nthe dog, the end.\n"

func TestUniqueJob(t *testing.T) {
	ctx := context.Background()
	job := UniqueJob()

	var mapped bytes.Buffer
	_, err := streaming.RunMap(ctx, job, strings.NewReader(text), &mapped, streaming.Options{})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(mapped.String(), "the\t1\ncat\t1\n"))

	var combined bytes.Buffer
	require.NoError(t, streaming.RunCombine(ctx, job, bytes.NewReader(mapped.Bytes()), &combined))
	require.Equal(t, ",\t1\n.\t1\ncat\t1\ndog\t1\nend\t1\nthe\t1\n", combined.String())

	var out bytes.Buffer
	require.NoError(t, streaming.RunReduce(ctx, job, &mapped, &out, streaming.Options{}))
	require.Equal(t, ",\n.\ncat\ndog\nend\nthe\n", out.String())
}

func TestCountJob(t *testing.T) {
	ctx := context.Background()
	job := CountJob()

	var mapped bytes.Buffer
	_, err := streaming.RunMap(ctx, job, strings.NewReader(text), &mapped, streaming.Options{Combine: true})
	require.NoError(t, err)
	require.Contains(t, mapped.String(), "the\t3\n")

	var out bytes.Buffer
	require.NoError(t, streaming.RunReduce(ctx, job, &mapped, &out, streaming.Options{}))
	require.Equal(t, ", 1\n. 1\ncat 1\ndog 1\nend 1\nthe 3\n", out.String())
}

func TestReduceCountMalformed(t *testing.T) {
	var out bytes.Buffer
	err := streaming.RunReduce(context.Background(), CountJob(), strings.NewReader("the\tmany\n"), &out, streaming.Options{})
	require.ErrorIs(t, err, streaming.ErrMalformed)
}

func TestCheck(t *testing.T) {
	_, err := CountJob().ParsePair("the\t3")
	require.NoError(t, err)

	_, err = CountJob().ParsePair("the\tmany")
	require.ErrorIs(t, err, streaming.ErrMalformed)

	_, err = UniqueJob().ParsePair("the\tmany")
	require.NoError(t, err, "unique words ignore values")
}
