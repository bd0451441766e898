package streaming

import (
	"errors"

	api "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/api/v1"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/types"
)

// Spill is where map tasks put their pairs until the reducer runs. Both the
// segmented commit log and the in-memory log satisfy it.
type Spill interface {
	Append(record *api.Record) (uint64, error)
	Read(offset uint64) (*api.Record, error)
	LowestOffset() (uint64, error)
}

func appendPair(s Spill, kv types.KeyValue) error {
	_, err := s.Append(&api.Record{Value: []byte(FormatLine(kv))})
	return err
}

// ReadAll returns every pair stored in s, in offset order.
func ReadAll(s Spill) ([]types.KeyValue, error) {
	off, err := s.LowestOffset()
	if err != nil {
		return nil, err
	}

	var pairs []types.KeyValue
	for ; ; off++ {
		record, err := s.Read(off)
		if err != nil {
			if errors.As(err, &api.ErrOffsetOutOfRange{}) {
				return pairs, nil
			}
			return nil, err
		}

		kv, err := ParseLine(string(record.Value))
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, kv)
	}
}
