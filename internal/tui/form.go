package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/northpower/dailysched/internal/catalog"
	"github.com/northpower/dailysched/internal/models"
)

// ScheduleFormModel holds the raw form values for a new schedule.
type ScheduleFormModel struct {
	Date             string
	BusinessUnit     string
	WorkOrder        string
	CustomerWorkType string
	JobDescription   string
	ProjectManager   string
	TaskInformation  string
	ProjectStatus    string
	Resources        []string
	Hours            string
	Status           models.ScheduleStatus
	Notes            string
}

func newScheduleFormModel(date models.Date) *ScheduleFormModel {
	return &ScheduleFormModel{
		Date:   date.ISO(),
		Hours:  "8",
		Status: models.StatusScheduled,
	}
}

// Candidate converts the form values into an unvalidated record. Blank or
// unparseable hours become nil so the validator reports them.
func (fm *ScheduleFormModel) Candidate(cat *catalog.Catalog) (models.ScheduleRecord, error) {
	date, err := models.ParseDate(strings.TrimSpace(fm.Date))
	if err != nil {
		return models.ScheduleRecord{}, err
	}

	var hours *float64
	if h, err := strconv.ParseFloat(strings.TrimSpace(fm.Hours), 64); err == nil {
		hours = &h
	}

	return models.ScheduleRecord{
		ScheduleDate:     date,
		BusinessUnit:     fm.BusinessUnit,
		WorkOrderNumber:  strings.TrimSpace(fm.WorkOrder),
		CustomerWorkType: fm.CustomerWorkType,
		JobDescription:   fm.JobDescription,
		ProjectManager:   fm.ProjectManager,
		TaskInformation:  fm.TaskInformation,
		ProjectStatus:    fm.ProjectStatus,
		Resources:        cat.Assignments(fm.Resources),
		HoursPerResource: hours,
		Status:           fm.Status,
		Notes:            fm.Notes,
	}, nil
}

// NewScheduleForm creates the form for adding a schedule. Required fields are
// checked by the validator after submission so all gaps are reported together.
func NewScheduleForm(fm *ScheduleFormModel, cat *catalog.Catalog) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Schedule Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					_, err := models.ParseDate(strings.TrimSpace(s))
					return err
				}),
			huh.NewSelect[string]().
				Title("Business Unit").
				Options(optionsWithBlank(cat.BusinessUnits)...).
				Value(&fm.BusinessUnit),
			huh.NewInput().
				Title("Work Order Number").
				Placeholder("TC4216033").
				Value(&fm.WorkOrder),
			huh.NewSelect[string]().
				Title("Customer / Work Type").
				Options(optionsWithBlank(cat.CustomerWorkTypes)...).
				Value(&fm.CustomerWorkType),
		).Title("Work order"),
		huh.NewGroup(
			huh.NewText().
				Title("Job Description").
				Value(&fm.JobDescription),
			huh.NewSelect[string]().
				Title("Project Manager").
				Options(optionsWithBlank(cat.ProjectManagers)...).
				Value(&fm.ProjectManager),
			huh.NewText().
				Title("Task Information").
				Value(&fm.TaskInformation),
			huh.NewSelect[string]().
				Title("Project Status").
				Options(optionsWithBlank(cat.ProjectStatuses)...).
				Value(&fm.ProjectStatus),
		).Title("Job"),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Resources Booked").
				Options(huh.NewOptions(cat.Resources...)...).
				Filterable(true).
				Value(&fm.Resources),
			huh.NewInput().
				Title("Hours per Resource").
				Value(&fm.Hours).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
						return fmt.Errorf("hours must be a number")
					}
					return nil
				}),
			huh.NewSelect[models.ScheduleStatus]().
				Title("Status").
				Options(statusOptions()...).
				Value(&fm.Status),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
		).Title("Resources"),
	).WithTheme(huh.ThemeDracula())
}

// ImportFormModel holds the path typed into the import prompt.
type ImportFormModel struct {
	Path string
}

func NewImportForm(fm *ImportFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Import schedules from").
				Description("Records with an existing id are replaced; others are kept.").
				Value(&fm.Path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func optionsWithBlank(values []string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("(none)", "")}
	return append(opts, huh.NewOptions(values...)...)
}

func statusOptions() []huh.Option[models.ScheduleStatus] {
	opts := make([]huh.Option[models.ScheduleStatus], 0, len(catalog.ScheduleStatuses))
	for _, s := range catalog.ScheduleStatuses {
		opts = append(opts, huh.NewOption(string(s), s))
	}
	return opts
}
