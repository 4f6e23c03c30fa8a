package scores

import (
	"context"
	"sort"
	"sync"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Store persists score records. Top returns at most limit records ordered by
// descending score, ties broken by ascending id.
type Store interface {
	Top(ctx context.Context, limit int) ([]Record, error)
	Create(ctx context.Context, s Submission) (Record, error)
}

type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	nextID  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (m *MemoryStore) Top(_ context.Context, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	limit = clampLimit(limit)
	if limit > len(m.records) {
		limit = len(m.records)
	}
	out := make([]Record, limit)
	copy(out, m.records[:limit])
	return out, nil
}

func (m *MemoryStore) Create(_ context.Context, s Submission) (Record, error) {
	s, err := s.Normalize()
	if err != nil {
		return Record{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record := s.record(m.nextID)
	m.nextID++
	m.records = insertRecord(m.records, record)
	return record, nil
}

func insertRecord(records []Record, record Record) []Record {
	records = append(records, record)
	sortRecords(records)
	return records
}

func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Score == records[j].Score {
			return records[i].ID < records[j].ID
		}
		return records[i].Score > records[j].Score
	})
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
