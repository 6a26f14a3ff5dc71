package store

import (
	"sync"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
)

// RecordStore is the append-only log of completed transfers.
type RecordStore struct {
	mu    sync.RWMutex
	items []entity.TransactionRecord
	ids   map[int64]struct{}
}

func NewRecordStore() *RecordStore {
	return &RecordStore{ids: make(map[int64]struct{})}
}

// Append adds record unless a record with the same id is already stored.
func (s *RecordStore) Append(record entity.TransactionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.ids[record.ID]; seen {
		return
	}
	s.items = append(s.items, record)
	s.ids[record.ID] = struct{}{}
}

// Load appends persisted records that are not stored yet, keeping their order.
func (s *RecordStore) Load(records []entity.TransactionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range records {
		if _, seen := s.ids[record.ID]; seen {
			continue
		}
		s.items = append(s.items, record)
		s.ids[record.ID] = struct{}{}
	}
}

// All returns the records in insertion order.
func (s *RecordStore) All() []entity.TransactionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.TransactionRecord, len(s.items))
	copy(out, s.items)
	return out
}

func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
