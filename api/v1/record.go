package api

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	recordValueField  protowire.Number = 1
	recordOffsetField protowire.Number = 2
)

var ErrMalformedRecord = errors.New("malformed record")

// Record is a single entry of the shuffle log. Value holds one
// intermediate "key\tvalue" line.
//
// Records are stored with the protobuf wire format:
//
//	message Record {
//	  bytes  value  = 1;
//	  uint64 offset = 2;
//	}
type Record struct {
	Value  []byte `json:"value"`
	Offset uint64 `json:"offset"`
}

func (r *Record) Marshal() ([]byte, error) {
	b := make([]byte, 0, protowire.SizeTag(recordValueField)+protowire.SizeBytes(len(r.Value))+
		protowire.SizeTag(recordOffsetField)+protowire.SizeVarint(r.Offset))

	if len(r.Value) != 0 {
		b = protowire.AppendTag(b, recordValueField, protowire.BytesType)
		b = protowire.AppendBytes(b, r.Value)
	}

	if r.Offset != 0 {
		b = protowire.AppendTag(b, recordOffsetField, protowire.VarintType)
		b = protowire.AppendVarint(b, r.Offset)
	}

	return b, nil
}

func (r *Record) Unmarshal(b []byte) error {
	*r = Record{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errors.Join(ErrMalformedRecord, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == recordValueField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return errors.Join(ErrMalformedRecord, protowire.ParseError(n))
			}
			r.Value = append([]byte(nil), v...)
			b = b[n:]

		case num == recordOffsetField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return errors.Join(ErrMalformedRecord, protowire.ParseError(n))
			}
			r.Offset = v
			b = b[n:]

		default:
			// unknown fields are skipped
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return errors.Join(ErrMalformedRecord, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	return nil
}
