package streaming

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/types"
)

// maxLineBytes bounds a single input or intermediate line.
const maxLineBytes = 1 << 20

var ErrMalformed = errors.New("malformed key/value line")

// LineError reports which input line a record error came from.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseLine splits an intermediate "key\tvalue" line at its first tab.
func ParseLine(line string) (types.KeyValue, error) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "\t")
	if !ok {
		return types.KeyValue{}, fmt.Errorf("%w: no tab in %q", ErrMalformed, line)
	}

	return types.KeyValue{Key: key, Value: value}, nil
}

func FormatLine(kv types.KeyValue) string {
	return kv.String()
}

func newScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return s
}

// ReadPairs reads every intermediate line of r. Blank lines are ignored.
func ReadPairs(ctx context.Context, r io.Reader) ([]types.KeyValue, error) {
	var pairs []types.KeyValue

	s := newScanner(r)
	for n := 1; s.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := s.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		kv, err := ParseLine(line)
		if err != nil {
			return nil, &LineError{Line: n, Err: err}
		}
		pairs = append(pairs, kv)
	}

	if err := s.Err(); err != nil {
		return nil, err
	}

	return pairs, nil
}

func writeLines(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, l := range lines {
		if _, err := bw.WriteString(l); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writePairs(w io.Writer, pairs []types.KeyValue) error {
	lines := make([]string, 0, len(pairs))
	for _, kv := range pairs {
		lines = append(lines, FormatLine(kv))
	}

	return writeLines(w, lines)
}
