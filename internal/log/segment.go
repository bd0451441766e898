package log

import (
	"fmt"
	"os"
	"path/filepath"

	api "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/api/v1"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
)

const (
	storeExt = ".store"
	indexExt = ".index"
)

type segment struct {
	index                  *index
	store                  *store
	cfg                    config.Segment
	baseOffset, nextOffset uint64
}

func segmentPath(dir string, baseOffset uint64, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%d%s", baseOffset, ext))
}

func newSegment(dir string, baseOffset uint64, cfg config.Segment) (*segment, error) {
	var err error

	s := &segment{
		cfg:        cfg,
		baseOffset: baseOffset,
	}

	storeFile, err := os.OpenFile(
		segmentPath(dir, baseOffset, storeExt),
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0644,
	)
	if err != nil {
		return nil, err
	}

	if s.store, err = newStore(storeFile); err != nil {
		return nil, err
	}

	indexFile, err := os.OpenFile(
		segmentPath(dir, baseOffset, indexExt),
		os.O_RDWR|os.O_CREATE,
		0644,
	)
	if err != nil {
		return nil, err
	}

	if s.index, err = newIndex(indexFile, s.cfg.MaxIndexBytes); err != nil {
		return nil, err
	}

	if off, _, err := s.index.Read(-1); err != nil {
		s.nextOffset = baseOffset
	} else {
		s.nextOffset = baseOffset + uint64(off) + 1
	}

	return s, nil
}

func (s *segment) Append(record *api.Record) (offset uint64, err error) {
	cur := s.nextOffset
	record.Offset = cur

	pos, err := s.store.Append(record)
	if err != nil {
		return 0, err
	}

	if err = s.index.Write(uint32(s.nextOffset-s.baseOffset), pos); err != nil {
		return 0, err
	}

	s.nextOffset++

	return cur, nil
}

func (s *segment) Read(off uint64) (*api.Record, error) {
	_, pos, err := s.index.Read(int64(off - s.baseOffset))
	if err != nil {
		return nil, err
	}

	return s.store.Read(pos)
}

// IsMaxed reports whether the segment has no room for another record.
func (s *segment) IsMaxed() bool {
	return s.store.Size() >= s.cfg.MaxStoreBytes || s.index.isMaxed()
}

// Remove closes the segment and deletes its two files.
func (s *segment) Remove() error {
	if err := s.Close(); err != nil {
		return err
	}

	if err := os.Remove(s.index.Name()); err != nil {
		return err
	}

	return os.Remove(s.store.Name())
}

func (s *segment) Close() error {
	if err := s.index.Close(); err != nil {
		return err
	}

	return s.store.Close()
}
