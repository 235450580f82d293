package models

import (
	"strings"
)

type ScheduleStatus string

const (
	StatusScheduled ScheduleStatus = "SCHEDULED"
	StatusCancelled ScheduleStatus = "CANCELLED"
	StatusCompleted ScheduleStatus = "COMPLETED"
)

// ResourceAssignment is one person booked onto a schedule record.
type ResourceAssignment struct {
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	RoleCode     string   `json:"role_code"`
	BookedHours  *float64 `json:"booked_hours,omitempty"` // falls back to the record's hours when nil
}

// Hours returns the booked hours, or fallback when none were booked explicitly.
func (a ResourceAssignment) Hours(fallback *float64) *float64 {
	if a.BookedHours != nil {
		return a.BookedHours
	}
	return fallback
}

// Label renders the assignment the way the option catalog lists resources ("Name - ROLE").
func (a ResourceAssignment) Label() string {
	if a.RoleCode == "" {
		return a.EmployeeName
	}
	return a.EmployeeName + " - " + a.RoleCode
}

// ScheduleRecord is one submitted work-order schedule entry.
type ScheduleRecord struct {
	ScheduleID       string               `json:"schedule_id"`
	ScheduleDate     Date                 `json:"schedule_date"`
	BusinessUnit     string               `json:"business_unit"`
	WorkOrderNumber  string               `json:"work_order_number"`
	CustomerWorkType string               `json:"customer_work_type"`
	JobDescription   string               `json:"job_description"`
	ProjectManager   string               `json:"project_manager"`
	TaskInformation  string               `json:"task_information"`
	ProjectStatus    string               `json:"project_status"`
	Resources        []ResourceAssignment `json:"resources"`
	HoursPerResource *float64             `json:"hours_per_resource"`
	Status           ScheduleStatus       `json:"status"`
	Notes            string               `json:"notes"`
}

// DeriveID builds the schedule id from a work order number and a date:
// "<work order>-<YYYYMMDD>". The work order is used verbatim, so callers that
// want "TC1 " and "TC1" to collide must trim before calling.
func DeriveID(workOrderNumber string, scheduleDate Date) string {
	return workOrderNumber + "-" + scheduleDate.Compact()
}

// WithDerivedID returns a copy of r with ScheduleID set from its work order and
// date, and Status defaulted to SCHEDULED when unset.
func (r ScheduleRecord) WithDerivedID() ScheduleRecord {
	r.ScheduleID = DeriveID(r.WorkOrderNumber, r.ScheduleDate)
	if r.Status == "" {
		r.Status = StatusScheduled
	}
	return r
}

// Clone returns a deep copy so callers cannot mutate store-owned slices or pointers.
func (r ScheduleRecord) Clone() ScheduleRecord {
	if r.HoursPerResource != nil {
		h := *r.HoursPerResource
		r.HoursPerResource = &h
	}
	if r.Resources != nil {
		res := make([]ResourceAssignment, len(r.Resources))
		for i, a := range r.Resources {
			if a.BookedHours != nil {
				h := *a.BookedHours
				a.BookedHours = &h
			}
			res[i] = a
		}
		r.Resources = res
	}
	return r
}

// ResourceLabels lists the resources in catalog label form.
func (r ScheduleRecord) ResourceLabels() []string {
	labels := make([]string, 0, len(r.Resources))
	for _, a := range r.Resources {
		labels = append(labels, a.Label())
	}
	return labels
}

// SplitCustomerWorkType splits values such as "VEC - Asset replacment" into
// customer and work type. Values without a separator are all work type.
func SplitCustomerWorkType(v string) (customer, workType string) {
	before, after, found := strings.Cut(v, " - ")
	if !found {
		return "", v
	}
	return before, after
}

// Hours is a convenience for building optional hour values.
func Hours(h float64) *float64 {
	return &h
}
