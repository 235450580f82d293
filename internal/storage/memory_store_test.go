package storage

import (
	"reflect"
	"testing"
	"time"

	"github.com/northpower/dailysched/internal/models"
)

func record(wo string, day int, bu string) models.ScheduleRecord {
	return models.ScheduleRecord{
		ScheduleDate:     models.NewDate(2024, time.March, day),
		BusinessUnit:     bu,
		WorkOrderNumber:  wo,
		JobDescription:   "job " + wo,
		ProjectManager:   "Neil Jones",
		TaskInformation:  "task",
		ProjectStatus:    "Live Line",
		Resources:        []models.ResourceAssignment{{EmployeeID: "jake-a", EmployeeName: "Jake A", RoleCode: "LM"}},
		HoursPerResource: models.Hours(8),
	}.WithDerivedID()
}

func ids(s Provider) []string {
	var out []string
	for r := range s.All() {
		out = append(out, r.ScheduleID)
	}
	return out
}

func TestMemoryStoreImplementsProvider(t *testing.T) {
	var _ Provider = NewMemoryStore()
	var _ Provider = NewJSONStore("unused.json")
}

func TestUpsertSameIDLastWriteWins(t *testing.T) {
	s := NewMemoryStore()

	first := record("TC4216033", 15, "DTS")
	second := record("TC4216033", 15, "CCS")
	s.Upsert(first)
	s.Upsert(second)

	if s.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", s.Len())
	}
	got, ok := s.Get("TC4216033-20240315")
	if !ok {
		t.Fatal("record not found")
	}
	if got.BusinessUnit != "CCS" {
		t.Errorf("BusinessUnit = %q, want the second write", got.BusinessUnit)
	}
}

func TestUpsertKeepsInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	s.Upsert(record("B", 1, "DTS"))
	s.Upsert(record("A", 1, "DTS"))
	s.Upsert(record("C", 1, "DTS"))
	s.Upsert(record("B", 1, "CCS"))

	want := []string{"B-20240301", "A-20240301", "C-20240301"}
	if got := ids(s); !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSameWorkOrderDifferentDays(t *testing.T) {
	s := NewMemoryStore()
	s.Upsert(record("TC4216033", 15, "DTS"))
	s.Upsert(record("TC4216033", 16, "DTS"))
	if s.Len() != 2 {
		t.Errorf("expected 2 records for different days, got %d", s.Len())
	}
}

func TestGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.Get("nope"); ok {
		t.Error("expected missing record")
	}
}

func TestReplaceAllMerges(t *testing.T) {
	s := NewMemoryStore()
	s.Upsert(record("A", 1, "DTS"))
	s.Upsert(record("B", 1, "DTS"))

	s.ReplaceAll([]models.ScheduleRecord{record("B", 1, "CCS"), record("C", 2, "DTS")})

	if s.Len() != 3 {
		t.Fatalf("expected 3 records after merge, got %d", s.Len())
	}
	if r, _ := s.Get("A-20240301"); r.BusinessUnit != "DTS" {
		t.Error("unmentioned record was dropped or changed")
	}
	if r, _ := s.Get("B-20240301"); r.BusinessUnit != "CCS" {
		t.Error("imported record did not overwrite")
	}

	s.ReplaceAll(nil)
	if s.Len() != 3 {
		t.Errorf("empty merge changed the store: %d", s.Len())
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	r := record("A", 1, "DTS")
	s.Upsert(r)

	r.Resources[0].EmployeeName = "mutated after upsert"
	got, _ := s.Get("A-20240301")
	if got.Resources[0].EmployeeName != "Jake A" {
		t.Error("store shares memory with the caller's record")
	}

	got.Resources[0].EmployeeName = "mutated after get"
	*got.HoursPerResource = 1
	for rec := range s.All() {
		if rec.Resources[0].EmployeeName != "Jake A" || *rec.HoursPerResource != 8 {
			t.Error("Get returned store-owned memory")
		}
		rec.Resources[0].EmployeeName = "mutated during iteration"
	}
	again, _ := s.Get("A-20240301")
	if again.Resources[0].EmployeeName != "Jake A" {
		t.Error("All returned store-owned memory")
	}
}

func TestAllStopsEarly(t *testing.T) {
	s := NewMemoryStore()
	for i := 1; i <= 5; i++ {
		s.Upsert(record("WO", i, "DTS"))
	}
	n := 0
	for range s.All() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected to stop after 2, got %d", n)
	}
}

func TestReset(t *testing.T) {
	s := NewMemoryStore()
	s.Upsert(record("A", 1, "DTS"))
	s.Reset()
	if s.Len() != 0 || len(ids(s)) != 0 {
		t.Error("Reset left records behind")
	}
	s.Upsert(record("B", 1, "DTS"))
	if got := ids(s); !reflect.DeepEqual(got, []string{"B-20240301"}) {
		t.Errorf("order after reset = %v", got)
	}
}
