package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/northpower/dailysched/internal/catalog"
	"github.com/northpower/dailysched/internal/constants"
	"github.com/northpower/dailysched/internal/logger"
	"github.com/northpower/dailysched/internal/models"
	"github.com/northpower/dailysched/internal/projection"
)

type AddCmd struct {
	Date             string   `short:"d" help:"Schedule date (YYYY-MM-DD). Defaults to today."`
	BusinessUnit     string   `short:"b" name:"bu" help:"Business unit."`
	WorkOrder        string   `short:"w" name:"wo" help:"Work order number."`
	CustomerWorkType string   `short:"c" name:"customer-work-type" help:"Customer / work type."`
	Job              string   `short:"j" help:"Job description."`
	PM               string   `short:"p" name:"pm" help:"Project manager."`
	Task             string   `short:"t" help:"Task information."`
	ProjectStatus    string   `short:"s" name:"project-status" help:"Project status."`
	Resource         []string `short:"r" help:"Resource label (\"Name - ROLE\"); repeatable."`
	ResourcesFrom    string   `name:"resources-from" help:"Copy resources from an existing schedule id when no --resource is given."`
	Hours            *float64 `short:"H" help:"Hours per resource."`
	Status           string   `help:"Schedule status (SCHEDULED|CANCELLED|COMPLETED)." default:"SCHEDULED"`
	Notes            string   `short:"n" help:"Free-form notes."`
}

func (c *AddCmd) Validate() error {
	if c.Date != "" {
		if _, err := models.ParseDate(c.Date); err != nil {
			return err
		}
	}
	if !catalog.IsScheduleStatus(models.ScheduleStatus(c.Status)) {
		return fmt.Errorf("invalid status %q", c.Status)
	}
	return nil
}

func (c *AddCmd) Run(ctx *Context) error {
	date, err := ParseDateOrToday(c.Date)
	if err != nil {
		return err
	}

	resources := ctx.Catalog.Assignments(c.Resource)
	if len(resources) == 0 && c.ResourcesFrom != "" {
		src, ok := ctx.Store.Get(c.ResourcesFrom)
		if !ok {
			return fmt.Errorf("schedule not found: %s", c.ResourcesFrom)
		}
		resources = src.Resources
	}

	candidate := models.ScheduleRecord{
		ScheduleDate:     date,
		BusinessUnit:     c.BusinessUnit,
		WorkOrderNumber:  strings.TrimSpace(c.WorkOrder),
		CustomerWorkType: c.CustomerWorkType,
		JobDescription:   c.Job,
		ProjectManager:   c.PM,
		TaskInformation:  c.Task,
		ProjectStatus:    c.ProjectStatus,
		Resources:        resources,
		HoursPerResource: c.Hours,
		Status:           models.ScheduleStatus(c.Status),
		Notes:            c.Notes,
	}

	if err := ctx.Validator.Validate(candidate).Err(); err != nil {
		logger.Warn("Schedule rejected", "work_order", candidate.WorkOrderNumber, "error", err)
		return err
	}

	record := candidate.WithDerivedID()
	_, existed := ctx.Store.Get(record.ScheduleID)
	ctx.Store.Upsert(record)
	if err := ctx.Persist(); err != nil {
		return err
	}

	logger.Info("Schedule submitted", "schedule_id", record.ScheduleID, "replaced", existed)
	verb := "Saved"
	if existed {
		verb = "Updated"
	}
	ctx.printf("✓ %s schedule %s\n", verb, record.ScheduleID)
	return nil
}

type GetCmd struct {
	ID string `arg:"" help:"Schedule id (<work order>-<YYYYMMDD>)."`
}

func (c *GetCmd) Run(ctx *Context) error {
	r, ok := ctx.Store.Get(c.ID)
	if !ok {
		return fmt.Errorf("schedule not found: %s", c.ID)
	}

	tw := ctx.newTable()
	tw.SetTitle(r.ScheduleID)
	tw.AppendRows([]table.Row{
		{"Date", r.ScheduleDate.ISO()},
		{"Business Unit", r.BusinessUnit},
		{"Work Order", r.WorkOrderNumber},
		{"Customer / Work Type", r.CustomerWorkType},
		{"Job Description", r.JobDescription},
		{"Project Manager", r.ProjectManager},
		{"Task Information", r.TaskInformation},
		{"Project Status", r.ProjectStatus},
		{"Resources", resourceSummary(r)},
		{"Hours per Resource", formatHours(r.HoursPerResource)},
		{"Status", r.Status},
		{"Notes", r.Notes},
	})
	tw.Render()
	return nil
}

type ListCmd struct {
	Month        string `short:"m" help:"Only schedules in this month (YYYY-MM)."`
	BusinessUnit string `short:"b" name:"bu" help:"Only schedules for this business unit."`
}

func (c *ListCmd) Run(ctx *Context) error {
	var records []models.ScheduleRecord
	if c.Month != "" {
		year, month, err := projection.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		records = projection.RecordsForMonth(ctx.Store, year, month)
	} else {
		for r := range ctx.Store.All() {
			records = append(records, r)
		}
	}

	tw := ctx.newTable()
	tw.AppendHeader(table.Row{"ID", "Date", "BU", "Work Order", "Job Description", "PM", "Resources", "Hours", "Status"})
	shown := 0
	for _, r := range records {
		if c.BusinessUnit != "" && r.BusinessUnit != c.BusinessUnit {
			continue
		}
		tw.AppendRow(table.Row{
			r.ScheduleID, r.ScheduleDate.ISO(), r.BusinessUnit, r.WorkOrderNumber,
			r.JobDescription, r.ProjectManager, len(r.Resources), formatHours(r.HoursPerResource), r.Status,
		})
		shown++
	}
	if shown == 0 {
		ctx.printf("No schedules found\n")
		return nil
	}
	tw.AppendFooter(table.Row{"", "", "", "", "", "", "", "Total", shown})
	tw.Render()
	return nil
}

func resourceSummary(r models.ScheduleRecord) string {
	if len(r.Resources) == 0 {
		return constants.EmptyResourceMarker
	}
	return strings.Join(r.ResourceLabels(), ", ")
}
