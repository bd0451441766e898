// Package log is a segmented, append-only record log. Map tasks spill their
// intermediate pairs into it and the reducer reads them back by offset.
package log

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	api "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/api/v1"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
)

const defaultSegmentBytes = 1024

type Log struct {
	mu sync.RWMutex

	Dir    string
	Config config.Segment

	activeSegment *segment
	segments      []*segment
}

func New(dir string, cfg config.Segment) (*Log, error) {
	if cfg.MaxStoreBytes == 0 {
		cfg.MaxStoreBytes = defaultSegmentBytes
	}

	if cfg.MaxIndexBytes == 0 {
		cfg.MaxIndexBytes = defaultSegmentBytes
	}

	l := &Log{
		Dir:    dir,
		Config: cfg,
	}

	return l, l.setup()
}

func (l *Log) setup() error {
	if err := os.MkdirAll(l.Dir, 0755); err != nil {
		return err
	}

	files, err := os.ReadDir(l.Dir)
	if err != nil {
		return err
	}

	seen := make(map[uint64]bool)
	var baseOffsets []uint64
	for _, file := range files {
		ext := filepath.Ext(file.Name())
		if ext != storeExt && ext != indexExt {
			continue
		}

		off, err := strconv.ParseUint(strings.TrimSuffix(file.Name(), ext), 10, 64)
		if err != nil || seen[off] {
			continue
		}
		seen[off] = true
		baseOffsets = append(baseOffsets, off)
	}

	sort.Slice(baseOffsets, func(i, j int) bool {
		return baseOffsets[i] < baseOffsets[j]
	})

	for _, offset := range baseOffsets {
		if err = l.newSegment(offset); err != nil {
			return err
		}
	}

	if l.segments == nil {
		return l.newSegment(l.Config.InitialOffset)
	}

	return nil
}

func (l *Log) Append(record *api.Record) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	off, err := l.activeSegment.Append(record)
	if err != nil {
		return 0, err
	}

	if l.activeSegment.IsMaxed() {
		err = l.newSegment(off + 1)
	}

	return off, err
}

func (l *Log) Read(off uint64) (*api.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var s *segment
	for _, seg := range l.segments {
		if seg.baseOffset <= off && off < seg.nextOffset {
			s = seg
			break
		}
	}

	if s == nil {
		return nil, api.ErrOffsetOutOfRange{Offset: off}
	}

	return s.Read(off)
}

func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, seg := range l.segments {
		if err := seg.Close(); err != nil {
			return err
		}
	}

	return nil
}

// removeSegments deletes the segment files of the log. Anything else in
// Dir is left alone.
func (l *Log) removeSegments() error {
	for _, seg := range l.segments {
		if err := seg.Remove(); err != nil {
			return err
		}
	}
	l.segments = nil
	l.activeSegment = nil

	return nil
}

// Remove deletes the log's segment files, and Dir as well once it is empty.
// The log is closed afterwards.
func (l *Log) Remove() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.removeSegments(); err != nil {
		return err
	}

	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return os.Remove(l.Dir)
	}

	return nil
}

// Reset drops every record and starts over at the initial offset.
func (l *Log) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.removeSegments(); err != nil {
		return err
	}

	return l.setup()
}

func (l *Log) LowestOffset() (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.segments[0].baseOffset, nil
}

// HighestOffset is the offset of the last record, or 0 for an empty log.
func (l *Log) HighestOffset() (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	off := l.segments[len(l.segments)-1].nextOffset
	if off == 0 {
		return 0, nil
	}

	return off - 1, nil
}

// Truncate removes every segment whose records are all below lowest.
func (l *Log) Truncate(lowest uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var segments []*segment
	for _, seg := range l.segments {
		if seg.nextOffset <= lowest {
			if err := seg.Remove(); err != nil {
				return err
			}
			continue
		}
		segments = append(segments, seg)
	}

	l.segments = segments
	if len(l.segments) == 0 {
		return l.newSegment(lowest)
	}

	return nil
}

// Reader streams the raw store files of every segment, in offset order.
func (l *Log) Reader() io.Reader {
	l.mu.RLock()
	defer l.mu.RUnlock()

	readers := make([]io.Reader, 0, len(l.segments))
	for _, seg := range l.segments {
		readers = append(readers, &originReader{store: seg.store})
	}

	return io.MultiReader(readers...)
}

type originReader struct {
	*store
	off int64
}

func (o *originReader) Read(p []byte) (int, error) {
	n, err := o.ReadAt(p, o.off)
	o.off += int64(n)

	return n, err
}

func (l *Log) newSegment(off uint64) error {
	seg, err := newSegment(l.Dir, off, l.Config)
	if err != nil {
		return err
	}

	l.segments = append(l.segments, seg)
	l.activeSegment = seg

	return nil
}
