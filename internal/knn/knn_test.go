package knn

import (
	"bytes"
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/streaming"
)

var (
	irisQuery = Point{5.1, 3.5, 1.4, 0.2}
	irisInput = strings.Join([]string{
		`5.0,3.4,1.4,0.2,"setosa"`,
		`6.0,3.0,4.0,1.0,"versicolor"`,
		`5.2,3.6,1.5,0.3,"setosa"`,
	}, "\n") + "\n"
)

func TestParseRecord(t *testing.T) {
	for scenario, tc := range map[string]struct {
		line    string
		dim     int
		want    FeatureRecord
		wantErr error
	}{
		"quoted label": {
			line: `5.0,3.4,1.4,0.2,"setosa"`,
			dim:  4,
			want: FeatureRecord{Features: Point{5.0, 3.4, 1.4, 0.2}, Label: "setosa"},
		},
		"bare label and surrounding spaces": {
			line: "  1, 2 ,virginica \r",
			want: FeatureRecord{Features: Point{1, 2}, Label: "virginica"},
		},
		"too few features": {
			line:    `5.0,3.4,"setosa"`,
			dim:     4,
			wantErr: ErrArity,
		},
		"no label": {
			line:    "5.0",
			wantErr: ErrArity,
		},
		"non numeric feature": {
			line:    `5.0,abc,1.4,0.2,"setosa"`,
			dim:     4,
			wantErr: ErrFeature,
		},
		"nan feature": {
			line:    `NaN,3.4,1.4,0.2,"setosa"`,
			dim:     4,
			wantErr: ErrFeature,
		},
		"empty label": {
			line:    `5.0,3.4,1.4,0.2,""`,
			dim:     4,
			wantErr: ErrLabel,
		},
	} {
		t.Run(scenario, func(t *testing.T) {
			got, err := ParseRecord(tc.line, tc.dim)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				var perr *ParseError
				require.True(t, errors.As(err, &perr))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParsePoint(t *testing.T) {
	p, err := ParsePoint("5.1, 3.5,1.4,0.2")
	require.NoError(t, err)
	require.Equal(t, irisQuery, p)
	require.Equal(t, "5.1,3.5,1.4,0.2", p.String())

	_, err = ParsePoint("")
	require.ErrorIs(t, err, ErrArity)

	_, err = ParsePoint("1,x")
	require.ErrorIs(t, err, ErrFeature)
}

func TestDistance(t *testing.T) {
	t.Run("zero for identical points", func(t *testing.T) {
		d, err := Distance(irisQuery, irisQuery)
		require.NoError(t, err)
		require.Zero(t, d)
	})

	t.Run("symmetric", func(t *testing.T) {
		r := rand.New(rand.NewSource(1))
		for i := 0; i < 100; i++ {
			a, b := make(Point, 5), make(Point, 5)
			for j := range a {
				a[j] = r.NormFloat64() * 10
				b[j] = r.NormFloat64() * 10
			}
			ab, err := Distance(a, b)
			require.NoError(t, err)
			ba, err := Distance(b, a)
			require.NoError(t, err)
			require.Equal(t, ab, ba)
		}
	})

	t.Run("euclidean", func(t *testing.T) {
		d, err := Distance(Point{0, 0}, Point{3, 4})
		require.NoError(t, err)
		require.Equal(t, 5.0, d)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := Distance(Point{1, 2}, Point{1, 2, 3})
		require.ErrorIs(t, err, ErrArity)
	})
}

func TestPairLine(t *testing.T) {
	p := Pair{Distance: 0.25, Label: "setosa"}
	require.Equal(t, "0.25\tsetosa", p.String())

	got, err := ParsePair(p.String())
	require.NoError(t, err)
	require.Equal(t, p, got)

	for _, bad := range []string{"0.5 setosa", "x\tsetosa", "-1\tsetosa", "NaN\tsetosa", "0.5\t"} {
		_, err := ParsePair(bad)
		require.Error(t, err, bad)
		var perr *ParseError
		require.True(t, errors.As(err, &perr), bad)
	}

	_, err = ParsePair("0.5\tiris\tsetosa")
	require.ErrorIs(t, err, ErrArity)
}

func TestJobCheck(t *testing.T) {
	job := irisJob()

	kv, err := job.ParsePair("0.2\tsetosa")
	require.NoError(t, err)
	require.Equal(t, Pair{Distance: 0.2, Label: "setosa"}.KeyValue(), kv)

	for line, want := range map[string]error{
		"abc\tsetosa":       ErrDistance,
		"-0.5\tsetosa":      ErrDistance,
		"0.5\tiris\tsetosa": ErrArity,
		"no tab":            streaming.ErrMalformed,
	} {
		_, err := job.ParsePair(line)
		require.ErrorIs(t, err, want, line)
	}
}

func TestVote(t *testing.T) {
	for scenario, tc := range map[string]struct {
		neighbors []Pair
		want      string
	}{
		"majority": {
			neighbors: []Pair{{0.1, "b"}, {0.2, "a"}, {0.3, "a"}},
			want:      "a",
		},
		"tie goes to the closest": {
			neighbors: []Pair{{0.1, "b"}, {0.2, "a"}, {0.3, "a"}, {0.4, "b"}},
			want:      "b",
		},
		"all distinct": {
			neighbors: []Pair{{0.1, "c"}, {0.2, "a"}, {0.3, "b"}},
			want:      "c",
		},
	} {
		t.Run(scenario, func(t *testing.T) {
			got, err := Vote(tc.neighbors)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := Vote(nil)
	require.ErrorIs(t, err, ErrNoNeighbors)
}

func TestNearest(t *testing.T) {
	pairs := []Pair{{2, "x"}, {1, "b"}, {1, "a"}, {3, "y"}}

	require.Equal(t, []Pair{{1, "a"}, {1, "b"}}, Nearest(pairs, 2))
	require.Len(t, Nearest(pairs, 10), 4)
	require.Equal(t, Pair{2, "x"}, pairs[0], "input must not be reordered")
}

func randomPairs(r *rand.Rand, n int) []Pair {
	labels := []string{"setosa", "versicolor", "virginica"}
	pairs := make([]Pair, n)
	for i := range pairs {
		pairs[i] = Pair{
			Distance: math.Round(r.Float64()*20) / 10,
			Label:    labels[r.Intn(len(labels))],
		}
	}
	return pairs
}

func TestPredictPermutationInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		pairs := randomPairs(r, 30)
		k := 1 + r.Intn(10)

		want, err := Predict(pairs, k)
		require.NoError(t, err)

		nearest := Nearest(pairs, k)
		var labels []string
		for _, n := range nearest {
			labels = append(labels, n.Label)
		}
		require.Contains(t, labels, want)

		shuffled := make([]Pair, len(pairs))
		copy(shuffled, pairs)
		r.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got, err := Predict(shuffled, k)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestCombineKeepsPrediction(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		pairs := randomPairs(r, 40)
		k := 1 + r.Intn(7)

		want, err := Predict(pairs, k)
		require.NoError(t, err)

		var combined []Pair
		for start := 0; start < len(pairs); start += 9 {
			end := min(start+9, len(pairs))
			combined = append(combined, Combine(pairs[start:end], k)...)
		}

		got, err := Predict(combined, k)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func irisJob() streaming.Job {
	return Job(config.KNN{QueryPoint: irisQuery, K: 3})
}

func TestJobIris(t *testing.T) {
	ctx := context.Background()
	job := irisJob()

	var mapped bytes.Buffer
	st, err := streaming.RunMap(ctx, job, strings.NewReader(irisInput), &mapped, streaming.Options{})
	require.NoError(t, err)
	require.Equal(t, 3, st.Emitted)

	lines := strings.Split(strings.TrimSpace(mapped.String()), "\n")
	require.Len(t, lines, 3)

	want := []Pair{
		{Distance: math.Sqrt(0.02), Label: "setosa"},
		{Distance: math.Sqrt(8.46), Label: "versicolor"},
		{Distance: 0.2, Label: "setosa"},
	}
	for i, l := range lines {
		p, err := ParsePair(l)
		require.NoError(t, err)
		require.Equal(t, want[i].Label, p.Label)
		require.InDelta(t, want[i].Distance, p.Distance, 1e-9)
	}

	var out bytes.Buffer
	require.NoError(t, streaming.RunReduce(ctx, job, &mapped, &out, streaming.Options{}))
	require.Equal(t, "Predicted label: setosa\n", out.String())
}

func TestJobMalformedInput(t *testing.T) {
	ctx := context.Background()
	input := "sepal_length,sepal_width,petal_length,petal_width,species\n" + irisInput

	t.Run("aborts by default", func(t *testing.T) {
		var out bytes.Buffer
		_, err := streaming.RunMap(ctx, irisJob(), strings.NewReader(input), &out, streaming.Options{})
		require.ErrorIs(t, err, ErrFeature)

		var lerr *streaming.LineError
		require.True(t, errors.As(err, &lerr))
		require.Equal(t, 1, lerr.Line)
	})

	t.Run("skipped when asked", func(t *testing.T) {
		var out bytes.Buffer
		st, err := streaming.RunMap(ctx, irisJob(), strings.NewReader(input), &out, streaming.Options{SkipMalformed: true})
		require.NoError(t, err)
		require.Equal(t, 1, st.Skipped)
		require.Equal(t, 3, st.Emitted)
	})
}

func TestJobCombine(t *testing.T) {
	job := Job(config.KNN{QueryPoint: irisQuery, K: 1})

	var out bytes.Buffer
	st, err := streaming.RunMap(context.Background(), job, strings.NewReader(irisInput), &out, streaming.Options{Combine: true})
	require.NoError(t, err)
	require.Equal(t, 3, st.Lines)
	require.Equal(t, 1, st.Emitted)
	require.True(t, strings.HasSuffix(strings.TrimSpace(out.String()), "\tsetosa"))
}

func TestJobEmptyReduce(t *testing.T) {
	var out bytes.Buffer
	err := streaming.RunReduce(context.Background(), irisJob(), strings.NewReader(""), &out, streaming.Options{})
	require.ErrorIs(t, err, ErrNoNeighbors)
	require.Empty(t, out.String())
}

func TestJobMalformedPair(t *testing.T) {
	var out bytes.Buffer
	err := streaming.RunReduce(context.Background(), irisJob(), strings.NewReader("abc\tsetosa\n"), &out, streaming.Options{})
	require.ErrorIs(t, err, ErrDistance)
}
