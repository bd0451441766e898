package log

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	api "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/api/v1"
)

// lenWidth is the size of the length prefix written before every record.
const lenWidth = 8

var enc = binary.BigEndian

// store is the data file of a segment. Each record is kept as its length
// followed by its wire encoding, so a position from the index is enough to
// read it back.
type store struct {
	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
	size uint64
}

func newStore(f *os.File) (*store, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	return &store{
		file: f,
		buf:  bufio.NewWriter(f),
		size: uint64(fi.Size()),
	}, nil
}

// Append encodes record at the end of the store and returns its position.
func (s *store) Append(record *api.Record) (pos uint64, err error) {
	p, err := record.Marshal()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var prefix [lenWidth]byte
	enc.PutUint64(prefix[:], uint64(len(p)))

	if _, err := s.buf.Write(prefix[:]); err != nil {
		return 0, err
	}
	if _, err := s.buf.Write(p); err != nil {
		return 0, err
	}

	pos = s.size
	s.size += lenWidth + uint64(len(p))

	return pos, nil
}

func (s *store) Read(pos uint64) (*api.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.buf.Flush(); err != nil {
		return nil, err
	}

	var prefix [lenWidth]byte
	if _, err := s.file.ReadAt(prefix[:], int64(pos)); err != nil {
		return nil, err
	}

	p := make([]byte, enc.Uint64(prefix[:]))
	if _, err := s.file.ReadAt(p, int64(pos+lenWidth)); err != nil {
		return nil, err
	}

	record := &api.Record{}
	if err := record.Unmarshal(p); err != nil {
		return nil, fmt.Errorf("%s at %d: %w", s.file.Name(), pos, err)
	}

	return record, nil
}

// ReadAt reads raw store bytes, length prefixes included.
func (s *store) ReadAt(p []byte, offset int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.buf.Flush(); err != nil {
		return 0, err
	}

	return s.file.ReadAt(p, offset)
}

// Size counts buffered bytes too.
func (s *store) Size() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.size
}

func (s *store) Name() string {
	return s.file.Name()
}

func (s *store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.buf.Flush(); err != nil {
		return err
	}

	return s.file.Close()
}
