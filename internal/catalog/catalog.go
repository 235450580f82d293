// Package catalog holds the fixed option lists offered by the schedule form.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/northpower/dailysched/internal/models"
)

var (
	BusinessUnits = []string{"DTS", "DDS", "DAR", "DWW", "DCN", "DES", "DRM"}

	ProjectManagers = []string{"John Donald", "Lyndon Connolly", "Neil Jones"}

	ProjectStatuses = []string{
		"Live Line", "Shut Down HV", "Shut Down LV", "De-energised",
		"Subcontractor only", "Tentative", "Unplanned", "Training",
		"9 Hr Break", "Leave", "Planning - Office based",
	}

	ScheduleStatuses = []models.ScheduleStatus{
		models.StatusScheduled, models.StatusCancelled, models.StatusCompleted,
	}

	CustomerWorkTypes = []string{
		"VEC - CIW CSUB", "VEC - CIW SUBDV", "VEC - Asset replacment",
		"VEC - Capital Contestable", "VEC - Capital - Non Contestable",
		"VEC - Streetlights", "Non VECTOR Customer Works", "Leave",
		"Non Charge", "Training",
	}

	Resources = []string{
		"Callum Mc - LM", "Carlo D - TRLM", "Chris B - LM", "Ethan P - TRLM",
		"Howard C - FLM", "Jake A - LM", "Joel G - LM", "John C - TRLM",
		"Luke B - LM", "Mack I - GB LM", "Mike I - FLM", "Poutama LE - TRLM",
		"Sam G - FLM", "Steve R - SU", "Toby E - TRLM",
	}
)

// Catalog is the set of option lists in effect for a session. Schedule
// statuses are fixed and not part of the override file.
type Catalog struct {
	BusinessUnits     []string `yaml:"business_units"`
	ProjectManagers   []string `yaml:"project_managers"`
	ProjectStatuses   []string `yaml:"project_statuses"`
	CustomerWorkTypes []string `yaml:"customer_work_types"`
	Resources         []string `yaml:"resources"`
}

// Default returns a catalog built from the package-level lists.
func Default() *Catalog {
	return &Catalog{
		BusinessUnits:     clone(BusinessUnits),
		ProjectManagers:   clone(ProjectManagers),
		ProjectStatuses:   clone(ProjectStatuses),
		CustomerWorkTypes: clone(CustomerWorkTypes),
		Resources:         clone(Resources),
	}
}

// Load reads a YAML override file. Lists present in the file replace the
// defaults; omitted lists keep them. An empty path returns the defaults.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return FromYAML(data)
}

// FromYAML decodes an override document on top of the defaults.
func FromYAML(data []byte) (*Catalog, error) {
	var override Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&override); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := Default()
	if len(override.BusinessUnits) > 0 {
		c.BusinessUnits = override.BusinessUnits
	}
	if len(override.ProjectManagers) > 0 {
		c.ProjectManagers = override.ProjectManagers
	}
	if len(override.ProjectStatuses) > 0 {
		c.ProjectStatuses = override.ProjectStatuses
	}
	if len(override.CustomerWorkTypes) > 0 {
		c.CustomerWorkTypes = override.CustomerWorkTypes
	}
	if len(override.Resources) > 0 {
		c.Resources = override.Resources
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects blank or duplicate entries.
func (c *Catalog) Validate() error {
	lists := []struct {
		name   string
		values []string
	}{
		{"business_units", c.BusinessUnits},
		{"project_managers", c.ProjectManagers},
		{"project_statuses", c.ProjectStatuses},
		{"customer_work_types", c.CustomerWorkTypes},
		{"resources", c.Resources},
	}
	for _, l := range lists {
		if len(l.values) == 0 {
			return fmt.Errorf("catalog.%s must not be empty", l.name)
		}
		seen := make(map[string]bool, len(l.values))
		for _, v := range l.values {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("catalog.%s has an empty entry", l.name)
			}
			if seen[v] {
				return fmt.Errorf("catalog.%s lists %q more than once", l.name, v)
			}
			seen[v] = true
		}
	}
	return nil
}

// Assignments converts catalog resource labels into resource assignments.
func (c *Catalog) Assignments(labels []string) []models.ResourceAssignment {
	out := make([]models.ResourceAssignment, 0, len(labels))
	for _, l := range labels {
		out = append(out, ParseResourceLabel(l))
	}
	return out
}

// ParseResourceLabel splits "Callum Mc - LM" into name and role code. The
// employee id is the lower-cased name with spaces replaced by dashes.
func ParseResourceLabel(label string) models.ResourceAssignment {
	name, role, found := strings.Cut(label, " - ")
	if !found {
		name = label
	}
	name = strings.TrimSpace(name)
	return models.ResourceAssignment{
		EmployeeID:   EmployeeID(name),
		EmployeeName: name,
		RoleCode:     strings.TrimSpace(role),
	}
}

// EmployeeID derives the stable id used for a resource name.
func EmployeeID(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// Contains reports whether value is one of the options.
func Contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

// IsScheduleStatus reports whether s is one of the fixed schedule statuses.
func IsScheduleStatus(s models.ScheduleStatus) bool {
	for _, st := range ScheduleStatuses {
		if st == s {
			return true
		}
	}
	return false
}

func clone(in []string) []string {
	return append([]string(nil), in...)
}
