// Package projection derives table rows, day counts and month grids from the
// schedule store. Every function is pure and recomputes from the source on
// each call.
package projection

import (
	"iter"
	"time"

	"github.com/northpower/dailysched/internal/constants"
	"github.com/northpower/dailysched/internal/models"
)

// Source is anything that can enumerate schedule records.
type Source interface {
	All() iter.Seq[models.ScheduleRecord]
}

// Row is one resource booked on one record, flattened for tabular display.
type Row struct {
	ScheduleID      string
	Date            models.Date
	BusinessUnit    string
	WorkOrderNumber string
	JobDescription  string
	Customer        string
	WorkType        string
	ProjectManager  string
	TaskInformation string
	ProjectStatus   string
	EmployeeName    string
	RoleCode        string
	BookedHours     *float64
	Notes           string
	Status          models.ScheduleStatus
}

// FlattenForTable returns one row per resource for records on date in
// businessUnit. An empty businessUnit matches every unit. Records without
// resources still produce a single placeholder row.
func FlattenForTable(src Source, date models.Date, businessUnit string) []Row {
	var records []models.ScheduleRecord
	for r := range src.All() {
		if r.ScheduleDate != date {
			continue
		}
		if businessUnit != "" && r.BusinessUnit != businessUnit {
			continue
		}
		records = append(records, r)
	}
	return Flatten(records)
}

// Flatten expands records into rows without filtering.
func Flatten(records []models.ScheduleRecord) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		customer, workType := models.SplitCustomerWorkType(r.CustomerWorkType)
		base := Row{
			ScheduleID:      r.ScheduleID,
			Date:            r.ScheduleDate,
			BusinessUnit:    r.BusinessUnit,
			WorkOrderNumber: r.WorkOrderNumber,
			JobDescription:  r.JobDescription,
			Customer:        customer,
			WorkType:        workType,
			ProjectManager:  r.ProjectManager,
			TaskInformation: r.TaskInformation,
			ProjectStatus:   r.ProjectStatus,
			Notes:           r.Notes,
			Status:          r.Status,
		}

		if len(r.Resources) == 0 {
			row := base
			row.EmployeeName = constants.EmptyResourceMarker
			row.BookedHours = r.HoursPerResource
			rows = append(rows, row)
			continue
		}
		for _, a := range r.Resources {
			row := base
			row.EmployeeName = a.EmployeeName
			row.RoleCode = a.RoleCode
			row.BookedHours = a.Hours(r.HoursPerResource)
			rows = append(rows, row)
		}
	}
	return rows
}

// RecordsForDay returns the records scheduled on isoDate (YYYY-MM-DD) in store
// order. An unparseable or empty day yields an empty slice.
func RecordsForDay(src Source, isoDate string) []models.ScheduleRecord {
	out := []models.ScheduleRecord{}
	for r := range src.All() {
		if r.ScheduleDate.ISO() == isoDate {
			out = append(out, r)
		}
	}
	return out
}

// RecordsForMonth returns the records scheduled in the given month in store order.
func RecordsForMonth(src Source, year int, month time.Month) []models.ScheduleRecord {
	out := []models.ScheduleRecord{}
	for r := range src.All() {
		if r.ScheduleDate.InMonth(year, month) {
			out = append(out, r)
		}
	}
	return out
}
