package storage

import (
	"iter"

	"github.com/northpower/dailysched/internal/models"
)

// MemoryStore keeps schedule records in process memory, keyed by schedule id
// and iterated in first-insertion order. Overwriting an id keeps its slot.
//
// MemoryStore is not safe for concurrent use; the TUI and CLI drive it from a
// single goroutine.
type MemoryStore struct {
	records map[string]models.ScheduleRecord
	order   []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]models.ScheduleRecord),
	}
}

// Upsert inserts or silently replaces the record at r.ScheduleID.
func (s *MemoryStore) Upsert(r models.ScheduleRecord) {
	if _, ok := s.records[r.ScheduleID]; !ok {
		s.order = append(s.order, r.ScheduleID)
	}
	s.records[r.ScheduleID] = r.Clone()
}

func (s *MemoryStore) Get(id string) (models.ScheduleRecord, bool) {
	r, ok := s.records[id]
	if !ok {
		return models.ScheduleRecord{}, false
	}
	return r.Clone(), true
}

// All yields a copy of every record. The sequence reads the store lazily, so
// it must not be held across mutations.
func (s *MemoryStore) All() iter.Seq[models.ScheduleRecord] {
	return func(yield func(models.ScheduleRecord) bool) {
		for _, id := range s.order {
			if !yield(s.records[id].Clone()) {
				return
			}
		}
	}
}

func (s *MemoryStore) ReplaceAll(records []models.ScheduleRecord) {
	for _, r := range records {
		s.Upsert(r)
	}
}

func (s *MemoryStore) Len() int {
	return len(s.records)
}

// Reset drops every record.
func (s *MemoryStore) Reset() {
	s.records = make(map[string]models.ScheduleRecord)
	s.order = nil
}
