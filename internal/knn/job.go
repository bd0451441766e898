package knn

import (
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/streaming"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/types"
)

const JobName = "knn"

// Mapper turns feature records into their distance from Query.
type Mapper struct {
	Query Point
}

func (m *Mapper) Map(line string) (Pair, error) {
	rec, err := ParseRecord(line, len(m.Query))
	if err != nil {
		return Pair{}, err
	}

	d, err := Distance(rec.Features, m.Query)
	if err != nil {
		return Pair{}, err
	}

	return Pair{Distance: d, Label: rec.Label}, nil
}

func pairsOf(kvs []types.KeyValue) ([]Pair, error) {
	pairs := make([]Pair, 0, len(kvs))
	for _, kv := range kvs {
		p, err := PairFromKeyValue(kv)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func keyValuesOf(pairs []Pair) []types.KeyValue {
	kvs := make([]types.KeyValue, 0, len(pairs))
	for _, p := range pairs {
		kvs = append(kvs, p.KeyValue())
	}
	return kvs
}

// FormatPrediction is the single output line of the reducer.
func FormatPrediction(label string) string {
	return "Predicted label: " + label
}

// Job is the streaming job classifying cfg.QueryPoint with cfg.K neighbours.
func Job(cfg config.KNN) streaming.Job {
	m := &Mapper{Query: Point(cfg.QueryPoint)}
	k := cfg.K

	return streaming.Job{
		Name: JobName,
		Map: func(line string) ([]types.KeyValue, error) {
			p, err := m.Map(line)
			if err != nil {
				return nil, err
			}
			return []types.KeyValue{p.KeyValue()}, nil
		},
		Combine: func(kvs []types.KeyValue) ([]types.KeyValue, error) {
			pairs, err := pairsOf(kvs)
			if err != nil {
				return nil, err
			}
			return keyValuesOf(Combine(pairs, k)), nil
		},
		Reduce: func(kvs []types.KeyValue) ([]string, error) {
			pairs, err := pairsOf(kvs)
			if err != nil {
				return nil, err
			}

			label, err := Predict(pairs, k)
			if err != nil {
				return nil, err
			}
			return []string{FormatPrediction(label)}, nil
		},
		Check: func(kv types.KeyValue) error {
			_, err := PairFromKeyValue(kv)
			return err
		},
	}
}
