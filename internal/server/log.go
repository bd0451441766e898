package server

import (
	"sync"

	api "github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/api/v1"
)

// Log is an in-memory CommitLog.
type Log struct {
	mu      sync.Mutex
	records []*api.Record
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Append(record *api.Record) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record.Offset = uint64(len(l.records))
	l.records = append(l.records, record)

	return record.Offset, nil
}

func (l *Log) Read(offset uint64) (*api.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if offset >= uint64(len(l.records)) {
		return nil, api.ErrOffsetOutOfRange{Offset: offset}
	}

	return l.records[offset], nil
}

func (l *Log) LowestOffset() (uint64, error) {
	return 0, nil
}

func (l *Log) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = nil
	return nil
}
