package validation

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/northpower/dailysched/internal/catalog"
	"github.com/northpower/dailysched/internal/models"
)

func validCandidate() models.ScheduleRecord {
	return models.ScheduleRecord{
		ScheduleDate:     models.NewDate(2024, time.March, 15),
		BusinessUnit:     "DTS",
		WorkOrderNumber:  "TC4216033",
		CustomerWorkType: "VEC - Streetlights",
		JobDescription:   "Replace lanterns on Main St",
		ProjectManager:   "Neil Jones",
		TaskInformation:  "Traffic management required",
		ProjectStatus:    "Live Line",
		Resources:        catalog.Default().Assignments([]string{"Jake A - LM", "Sam G - FLM"}),
		HoursPerResource: models.Hours(8),
		Status:           models.StatusScheduled,
	}
}

func TestValidate_ValidCandidate(t *testing.T) {
	v := New(DefaultPolicy(), nil)
	result := v.Validate(validCandidate())
	if !result.OK() {
		t.Fatalf("expected valid candidate, missing: %v", result.Missing)
	}
	if result.Err() != nil {
		t.Errorf("Err() should be nil on success, got %v", result.Err())
	}
}

func TestValidate_EachRequiredFieldReported(t *testing.T) {
	tests := []struct {
		field string
		clear func(r *models.ScheduleRecord)
	}{
		{FieldBusinessUnit, func(r *models.ScheduleRecord) { r.BusinessUnit = "" }},
		{FieldWorkOrderNumber, func(r *models.ScheduleRecord) { r.WorkOrderNumber = "   " }},
		{FieldJobDescription, func(r *models.ScheduleRecord) { r.JobDescription = "" }},
		{FieldProjectManager, func(r *models.ScheduleRecord) { r.ProjectManager = "" }},
		{FieldTaskInformation, func(r *models.ScheduleRecord) { r.TaskInformation = "\n\t" }},
		{FieldProjectStatus, func(r *models.ScheduleRecord) { r.ProjectStatus = "" }},
		{FieldResourcesBooked, func(r *models.ScheduleRecord) { r.Resources = nil }},
		{FieldHoursPerResource, func(r *models.ScheduleRecord) { r.HoursPerResource = nil }},
	}

	v := New(DefaultPolicy(), nil)
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			c := validCandidate()
			tt.clear(&c)
			result := v.Validate(c)
			if !reflect.DeepEqual(result.Missing, []string{tt.field}) {
				t.Errorf("Missing = %v, want [%s]", result.Missing, tt.field)
			}
		})
	}
}

func TestValidate_OrderIsFixed(t *testing.T) {
	v := New(DefaultPolicy(), nil)
	result := v.Validate(models.ScheduleRecord{})

	want := []string{
		FieldBusinessUnit,
		FieldWorkOrderNumber,
		FieldJobDescription,
		FieldProjectManager,
		FieldTaskInformation,
		FieldProjectStatus,
		FieldResourcesBooked,
		FieldHoursPerResource,
	}
	if !reflect.DeepEqual(result.Missing, want) {
		t.Errorf("Missing = %v\nwant     %v", result.Missing, want)
	}
}

func TestValidate_RequireWorkTypeInsertsAfterWorkOrder(t *testing.T) {
	v := New(Policy{RequireWorkType: true}, nil)
	result := v.Validate(models.ScheduleRecord{})
	if len(result.Missing) != 9 {
		t.Fatalf("expected 9 missing fields, got %v", result.Missing)
	}
	if result.Missing[2] != FieldCustomerWorkType {
		t.Errorf("Customer / Work Type should be third, got %v", result.Missing)
	}
}

func TestValidate_HoursRange(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		hours   float64
		wantErr bool
	}{
		{"lower bound", DefaultPolicy(), 0.5, false},
		{"upper bound", DefaultPolicy(), 24, false},
		{"below range", DefaultPolicy(), 0.25, true},
		{"above range", DefaultPolicy(), 24.5, true},
		{"unchecked zero", Policy{}, 0, false},
		{"unchecked large", Policy{}, 36, false},
		{"NaN", DefaultPolicy(), math.NaN(), true},
		{"positive infinity", DefaultPolicy(), math.Inf(1), true},
		{"unchecked NaN", Policy{}, math.NaN(), true},
		{"unchecked negative infinity", Policy{}, math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			c.HoursPerResource = models.Hours(tt.hours)
			result := New(tt.policy, nil).Validate(c)
			if result.OK() == tt.wantErr {
				t.Errorf("hours %v: OK() = %v, missing %v", tt.hours, result.OK(), result.Missing)
			}
			if tt.wantErr && result.Missing[0] != FieldHoursPerResource {
				t.Errorf("expected hours to be reported, got %v", result.Missing)
			}
		})
	}
}

func TestValidate_StrictCatalog(t *testing.T) {
	c := validCandidate()
	c.BusinessUnit = "Northern"
	c.CustomerWorkType = "Private job"
	c.ProjectStatus = "Maybe"

	if result := New(DefaultPolicy(), nil).Validate(c); !result.OK() {
		t.Errorf("free text should pass without StrictCatalog, got %v", result.Missing)
	}

	strict := New(Policy{StrictCatalog: true, EnforceHoursRange: true}, nil)
	result := strict.Validate(c)
	want := []string{FieldBusinessUnit, FieldCustomerWorkType, FieldProjectStatus}
	if !reflect.DeepEqual(result.Missing, want) {
		t.Errorf("Missing = %v, want %v", result.Missing, want)
	}

	c.CustomerWorkType = ""
	result = strict.Validate(c)
	for _, f := range result.Missing {
		if f == FieldCustomerWorkType {
			t.Error("an empty work type is optional unless RequireWorkType is set")
		}
	}
}

func TestValidate_CustomCatalog(t *testing.T) {
	cat, err := catalog.FromYAML([]byte("business_units: [NTH]\n"))
	if err != nil {
		t.Fatal(err)
	}
	c := validCandidate()
	c.BusinessUnit = "NTH"
	if result := New(Policy{StrictCatalog: true}, cat).Validate(c); !result.OK() {
		t.Errorf("NTH should be accepted by the custom catalog, got %v", result.Missing)
	}
}

func TestValidationError(t *testing.T) {
	c := validCandidate()
	c.BusinessUnit = ""
	c.HoursPerResource = nil

	err := New(DefaultPolicy(), nil).Validate(c).Err()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !strings.Contains(err.Error(), "Business Unit, Hours per Resource") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	c := validCandidate()
	before := c.Clone()
	New(Policy{StrictCatalog: true, EnforceHoursRange: true, RequireWorkType: true}, nil).Validate(c)
	if !reflect.DeepEqual(before, c) {
		t.Error("Validate mutated its input")
	}
}
