package knn

import (
	"math"
	"strconv"
	"strings"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/streaming"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/types"
)

// Pair is the distance of one training record from the query point, with
// that record's label.
type Pair struct {
	Distance float64
	Label    string
}

func formatDistance(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func (p Pair) KeyValue() types.KeyValue {
	return types.KeyValue{Key: formatDistance(p.Distance), Value: p.Label}
}

// String renders the pair as an intermediate "distance\tlabel" line.
func (p Pair) String() string {
	return streaming.FormatLine(p.KeyValue())
}

func ParsePair(line string) (Pair, error) {
	kv, err := streaming.ParseLine(line)
	if err != nil {
		return Pair{}, &ParseError{Input: line, Reason: "no tab", Err: ErrArity}
	}

	return PairFromKeyValue(kv)
}

func PairFromKeyValue(kv types.KeyValue) (Pair, error) {
	d, err := strconv.ParseFloat(strings.TrimSpace(kv.Key), 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return Pair{}, &ParseError{Input: kv.String(), Reason: kv.Key, Err: ErrDistance}
	}

	if kv.Value == "" {
		return Pair{}, &ParseError{Input: kv.String(), Err: ErrLabel}
	}
	if strings.Contains(kv.Value, "\t") {
		return Pair{}, &ParseError{Input: kv.String(), Reason: "more than two fields", Err: ErrArity}
	}

	return Pair{Distance: d, Label: kv.Value}, nil
}

// Less orders pairs by distance, then by label.
func Less(a, b Pair) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Label < b.Label
}
