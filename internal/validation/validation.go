package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/northpower/dailysched/internal/catalog"
	"github.com/northpower/dailysched/internal/constants"
	"github.com/northpower/dailysched/internal/models"
)

// Field display names, in the order they are reported.
const (
	FieldBusinessUnit     = "Business Unit"
	FieldWorkOrderNumber  = "Work Order Number"
	FieldCustomerWorkType = "Customer / Work Type"
	FieldJobDescription   = "Job Description"
	FieldProjectManager   = "Project Manager"
	FieldTaskInformation  = "Task Information"
	FieldProjectStatus    = "Project Status"
	FieldResourcesBooked  = "Resources Booked"
	FieldHoursPerResource = "Hours per Resource"
)

// Policy selects the optional checks layered on top of the presence pass.
type Policy struct {
	// EnforceHoursRange rejects hours outside [0.5, 24.0].
	EnforceHoursRange bool
	// StrictCatalog requires business unit, customer / work type and project
	// status to be catalog values rather than free text.
	StrictCatalog bool
	// RequireWorkType adds customer / work type to the required fields.
	RequireWorkType bool
}

// DefaultPolicy range-checks hours and accepts free text.
func DefaultPolicy() Policy {
	return Policy{EnforceHoursRange: true}
}

// ValidationError lists the fields that blocked a submission.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("please fill in all required fields: %s", strings.Join(e.Missing, ", "))
}

// Result is the outcome of validating one candidate record.
type Result struct {
	Missing []string
}

// OK reports whether the candidate may be admitted to the store.
func (r Result) OK() bool {
	return len(r.Missing) == 0
}

// Err returns a *ValidationError when fields are missing, nil otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Missing: append([]string(nil), r.Missing...)}
}

// Validator checks candidate records before they reach the store.
type Validator struct {
	policy  Policy
	catalog *catalog.Catalog
}

// New creates a Validator. A nil catalog falls back to the defaults.
func New(policy Policy, cat *catalog.Catalog) *Validator {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Validator{policy: policy, catalog: cat}
}

// Policy returns the policy the validator was built with.
func (v *Validator) Policy() Policy {
	return v.policy
}

// Validate runs the required-field pass. It never mutates the candidate.
func (v *Validator) Validate(r models.ScheduleRecord) Result {
	var missing []string

	if blank(r.BusinessUnit) || v.offCatalog(v.catalog.BusinessUnits, r.BusinessUnit) {
		missing = append(missing, FieldBusinessUnit)
	}
	if blank(r.WorkOrderNumber) {
		missing = append(missing, FieldWorkOrderNumber)
	}
	if v.policy.RequireWorkType && blank(r.CustomerWorkType) {
		missing = append(missing, FieldCustomerWorkType)
	} else if !blank(r.CustomerWorkType) && v.offCatalog(v.catalog.CustomerWorkTypes, r.CustomerWorkType) {
		missing = append(missing, FieldCustomerWorkType)
	}
	if blank(r.JobDescription) {
		missing = append(missing, FieldJobDescription)
	}
	if blank(r.ProjectManager) {
		missing = append(missing, FieldProjectManager)
	}
	if blank(r.TaskInformation) {
		missing = append(missing, FieldTaskInformation)
	}
	if blank(r.ProjectStatus) || v.offCatalog(v.catalog.ProjectStatuses, r.ProjectStatus) {
		missing = append(missing, FieldProjectStatus)
	}
	if len(r.Resources) == 0 {
		missing = append(missing, FieldResourcesBooked)
	}
	if !v.hoursOK(r.HoursPerResource) {
		missing = append(missing, FieldHoursPerResource)
	}

	return Result{Missing: missing}
}

func (v *Validator) hoursOK(h *float64) bool {
	if h == nil || math.IsNaN(*h) || math.IsInf(*h, 0) {
		return false
	}
	if v.policy.EnforceHoursRange {
		return *h >= constants.MinHoursPerResource && *h <= constants.MaxHoursPerResource
	}
	return true
}

func (v *Validator) offCatalog(options []string, value string) bool {
	return v.policy.StrictCatalog && !catalog.Contains(options, value)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
