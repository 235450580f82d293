package session

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/northpower/dailysched/internal/models"
	"github.com/northpower/dailysched/internal/storage"
)

func TestNewSession(t *testing.T) {
	s := New(nil)
	if _, err := uuid.Parse(s.ID); err != nil {
		t.Errorf("session id is not a uuid: %q", s.ID)
	}
	if s.Store == nil || s.Prefill == nil {
		t.Fatal("session not fully initialized")
	}
	if time.Since(s.StartedAt) > time.Minute {
		t.Errorf("StartedAt = %v", s.StartedAt)
	}
	if other := New(nil); other.ID == s.ID {
		t.Error("two sessions share an id")
	}
}

func TestCloseResetsStore(t *testing.T) {
	store := storage.NewMemoryStore()
	store.Upsert(models.ScheduleRecord{WorkOrderNumber: "A", ScheduleDate: models.NewDate(2024, time.March, 1)}.WithDerivedID())

	s := New(store)
	s.Prefill.Set([]models.ResourceAssignment{{EmployeeName: "Jake A"}})
	s.Close()

	if store.Len() != 0 {
		t.Errorf("store still holds %d records", store.Len())
	}
	if s.Prefill.Pending() {
		t.Error("prefill survived Close")
	}
}

func TestPrefillTakeOnce(t *testing.T) {
	var p Prefill[string]
	if p.Pending() {
		t.Error("new prefill should be empty")
	}
	if _, ok := p.TakeOnce(); ok {
		t.Error("TakeOnce on an empty prefill should return false")
	}

	p.Set("Jake A - LM")
	if !p.Pending() {
		t.Error("expected pending value")
	}
	v, ok := p.TakeOnce()
	if !ok || v != "Jake A - LM" {
		t.Errorf("TakeOnce = %q, %v", v, ok)
	}
	if v, ok := p.TakeOnce(); ok || v != "" {
		t.Errorf("second TakeOnce = %q, %v", v, ok)
	}

	p.Set("a")
	p.Set("b")
	if v, _ := p.TakeOnce(); v != "b" {
		t.Errorf("latest Set should win, got %q", v)
	}
}
