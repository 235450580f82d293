package projection

import (
	"reflect"
	"testing"
	"time"

	"github.com/northpower/dailysched/internal/constants"
	"github.com/northpower/dailysched/internal/models"
	"github.com/northpower/dailysched/internal/storage"
)

func newRecord(wo string, d models.Date, bu string, resources ...string) models.ScheduleRecord {
	r := models.ScheduleRecord{
		ScheduleDate:     d,
		BusinessUnit:     bu,
		WorkOrderNumber:  wo,
		CustomerWorkType: "VEC - Streetlights",
		JobDescription:   "job " + wo,
		ProjectManager:   "Neil Jones",
		TaskInformation:  "task",
		ProjectStatus:    "Live Line",
		HoursPerResource: models.Hours(8),
	}
	for _, name := range resources {
		r.Resources = append(r.Resources, models.ResourceAssignment{EmployeeName: name, RoleCode: "LM"})
	}
	return r.WithDerivedID()
}

func TestFlattenRowCount(t *testing.T) {
	day := models.NewDate(2024, time.March, 15)
	s := storage.NewMemoryStore()
	s.Upsert(newRecord("A", day, "DTS", "Jake A", "Sam G", "Josh A"))
	s.Upsert(newRecord("B", day, "DTS"))
	s.Upsert(newRecord("C", day, "DTS", "Jake A"))
	s.Upsert(newRecord("D", day, "CCS", "Jake A"))
	s.Upsert(newRecord("E", day.AddDays(1), "DTS", "Jake A"))

	rows := FlattenForTable(s, day, "DTS")
	// 3 + max(1, 0) + 1
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.BusinessUnit != "DTS" || r.Date != day {
			t.Errorf("row outside the filter: %+v", r)
		}
	}

	if all := FlattenForTable(s, day, ""); len(all) != 6 {
		t.Errorf("empty business unit should match every unit, got %d rows", len(all))
	}
	if none := FlattenForTable(s, day, "PCD"); len(none) != 0 {
		t.Errorf("expected no rows, got %d", len(none))
	}
}

func TestFlattenPlaceholderRow(t *testing.T) {
	day := models.NewDate(2024, time.March, 15)
	s := storage.NewMemoryStore()
	s.Upsert(newRecord("B", day, "DTS"))

	rows := FlattenForTable(s, day, "DTS")
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].EmployeeName != constants.EmptyResourceMarker || rows[0].RoleCode != "" {
		t.Errorf("placeholder row = %+v", rows[0])
	}
}

func TestFlattenRowFields(t *testing.T) {
	day := models.NewDate(2024, time.March, 15)
	r := newRecord("A", day, "DTS", "Jake A", "Sam G")
	r.Resources[1].BookedHours = models.Hours(3)
	r.Notes = "bring ladder"

	rows := Flatten([]models.ScheduleRecord{r})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	first := rows[0]
	if first.Customer != "VEC" || first.WorkType != "Streetlights" {
		t.Errorf("customer/work type = %q/%q", first.Customer, first.WorkType)
	}
	if first.WorkOrderNumber != "A" || first.ScheduleID != "A-20240315" || first.Notes != "bring ladder" {
		t.Errorf("unexpected row: %+v", first)
	}
	if *first.BookedHours != 8 {
		t.Errorf("first row hours = %v, want record fallback", *first.BookedHours)
	}
	if *rows[1].BookedHours != 3 {
		t.Errorf("second row hours = %v, want booked hours", *rows[1].BookedHours)
	}
	if first.Status != models.StatusScheduled {
		t.Errorf("Status = %q", first.Status)
	}
}

func TestDayCounts(t *testing.T) {
	s := storage.NewMemoryStore()
	if counts := DayCounts(s, 2024, time.March); len(counts) != 0 {
		t.Errorf("expected empty counts, got %v", counts)
	}

	day := models.NewDate(2024, time.March, 15)
	for _, wo := range []string{"A", "B", "C"} {
		s.Upsert(newRecord(wo, day, "DTS"))
	}
	s.Upsert(newRecord("D", models.NewDate(2024, time.April, 1), "DTS"))

	counts := DayCounts(s, 2024, time.March)
	if !reflect.DeepEqual(counts, map[string]int{"2024-03-15": 3}) {
		t.Errorf("counts = %v", counts)
	}
}

func TestWorkOrderScenario(t *testing.T) {
	s := storage.NewMemoryStore()
	r := newRecord("TC4216033", models.NewDate(2024, time.March, 15), "DTS", "Jake A")
	s.Upsert(r)

	if r.ScheduleID != "TC4216033-20240315" {
		t.Fatalf("ScheduleID = %q", r.ScheduleID)
	}
	if _, ok := s.Get("TC4216033-20240315"); !ok {
		t.Fatal("record not found by id")
	}
	if counts := DayCounts(s, 2024, time.March); !reflect.DeepEqual(counts, map[string]int{"2024-03-15": 1}) {
		t.Errorf("counts = %v", counts)
	}
}

func TestRecordsForDay(t *testing.T) {
	s := storage.NewMemoryStore()
	day := models.NewDate(2024, time.March, 15)
	s.Upsert(newRecord("B", day, "DTS"))
	s.Upsert(newRecord("X", day.AddDays(1), "DTS"))
	s.Upsert(newRecord("A", day, "CCS"))

	got := RecordsForDay(s, "2024-03-15")
	if len(got) != 2 || got[0].WorkOrderNumber != "B" || got[1].WorkOrderNumber != "A" {
		t.Errorf("unexpected records: %+v", got)
	}

	miss := RecordsForDay(s, "2024-01-01")
	if miss == nil || len(miss) != 0 {
		t.Errorf("expected an empty, non-nil slice, got %#v", miss)
	}
}

func TestRecordsForMonth(t *testing.T) {
	s := storage.NewMemoryStore()
	s.Upsert(newRecord("A", models.NewDate(2024, time.March, 1), "DTS"))
	s.Upsert(newRecord("B", models.NewDate(2024, time.March, 31), "DTS"))
	s.Upsert(newRecord("C", models.NewDate(2024, time.April, 1), "DTS"))
	if got := RecordsForMonth(s, 2024, time.March); len(got) != 2 {
		t.Errorf("expected 2 records in March, got %d", len(got))
	}
}

func TestMonthGridBounds(t *testing.T) {
	tests := []struct {
		year       int
		month      time.Month
		start, end string
		length     int
	}{
		// Friday 1st, Sunday 31st
		{2024, time.March, "2024-02-26", "2024-03-31", 35},
		// Monday 1st
		{2024, time.April, "2024-04-01", "2024-05-05", 35},
		// 28 days starting on a Monday
		{2021, time.February, "2021-02-01", "2021-02-28", 28},
		// Sunday 1st
		{2023, time.October, "2023-09-25", "2023-11-05", 42},
	}

	for _, tt := range tests {
		t.Run(MonthLabel(tt.year, tt.month), func(t *testing.T) {
			grid := MonthGrid(tt.year, tt.month)
			if len(grid) != tt.length || len(grid)%7 != 0 {
				t.Fatalf("grid length = %d, want %d", len(grid), tt.length)
			}
			if grid[0].Date.Weekday() != time.Monday {
				t.Errorf("grid starts on %s", grid[0].Date.Weekday())
			}
			if grid[len(grid)-1].Date.Weekday() != time.Sunday {
				t.Errorf("grid ends on %s", grid[len(grid)-1].Date.Weekday())
			}
			if grid[0].Date.ISO() != tt.start || grid[len(grid)-1].Date.ISO() != tt.end {
				t.Errorf("grid = %s..%s, want %s..%s", grid[0].Date, grid[len(grid)-1].Date, tt.start, tt.end)
			}

			inMonth := 0
			for _, g := range grid {
				if g.InMonth != g.Date.InMonth(tt.year, tt.month) {
					t.Errorf("%s InMonth = %v", g.Date, g.InMonth)
				}
				if g.InMonth {
					inMonth++
				}
			}
			days := models.NewDate(tt.year, tt.month+1, 0).Day()
			if inMonth != days {
				t.Errorf("in-month days = %d, want %d", inMonth, days)
			}
		})
	}
}

func TestBuildMonth(t *testing.T) {
	s := storage.NewMemoryStore()
	s.Upsert(newRecord("A", models.NewDate(2024, time.March, 15), "DTS"))
	s.Upsert(newRecord("B", models.NewDate(2024, time.March, 15), "DTS"))
	s.Upsert(newRecord("C", models.NewDate(2024, time.February, 26), "DTS"))

	m := BuildMonth(s, 2024, time.March)
	if m.Label != "March 2024" {
		t.Errorf("Label = %q", m.Label)
	}
	if len(m.Weeks) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(m.Weeks))
	}
	if m.Total != 2 {
		t.Errorf("Total = %d, want 2 (out-of-month days are not counted)", m.Total)
	}
	// 2024-03-15 is the Friday of the third week.
	if day := m.Weeks[2][4]; day.Date.ISO() != "2024-03-15" || day.Count != 2 {
		t.Errorf("Weeks[2][4] = %+v", day)
	}
	if lead := m.Weeks[0][0]; lead.InMonth || lead.Count != 0 {
		t.Errorf("leading day = %+v", lead)
	}
}

func TestShiftMonth(t *testing.T) {
	if y, m := ShiftMonth(2024, time.January, -1); y != 2023 || m != time.December {
		t.Errorf("ShiftMonth back = %d-%s", y, m)
	}
	if y, m := ShiftMonth(2024, time.December, 1); y != 2025 || m != time.January {
		t.Errorf("ShiftMonth forward = %d-%s", y, m)
	}
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("2024-03")
	if err != nil || y != 2024 || m != time.March {
		t.Errorf("ParseMonth = %d, %s, %v", y, m, err)
	}
	if _, _, err := ParseMonth("March"); err == nil {
		t.Error("expected error")
	}
}
