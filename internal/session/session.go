// Package session holds the state owned by one interactive run: the record
// store and the one-shot values handed from one form to the next.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/northpower/dailysched/internal/models"
	"github.com/northpower/dailysched/internal/storage"
)

type Session struct {
	ID        string
	StartedAt time.Time
	Store     storage.Provider
	// Resources copied from a record, offered to the next new schedule form.
	Prefill *Prefill[[]models.ResourceAssignment]
}

// New starts a session over store. A nil store gets a fresh MemoryStore.
func New(store storage.Provider) *Session {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	return &Session{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		Store:     store,
		Prefill:   &Prefill[[]models.ResourceAssignment]{},
	}
}

// Close ends the session, dropping every record and any pending prefill.
func (s *Session) Close() {
	s.Store.Reset()
	s.Prefill.Clear()
}

// Prefill holds a value that is consumed by the first reader.
type Prefill[T any] struct {
	value T
	set   bool
}

func (p *Prefill[T]) Set(v T) {
	p.value = v
	p.set = true
}

// TakeOnce returns the pending value and clears it. A second call returns false.
func (p *Prefill[T]) TakeOnce() (T, bool) {
	v, ok := p.value, p.set
	p.Clear()
	return v, ok
}

func (p *Prefill[T]) Pending() bool {
	return p.set
}

func (p *Prefill[T]) Clear() {
	var zero T
	p.value = zero
	p.set = false
}
