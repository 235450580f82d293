package cli

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/northpower/dailysched/internal/projection"
)

// TableCmd prints the flattened one-row-per-resource view for a day.
type TableCmd struct {
	Date         string `short:"d" help:"Day to show (YYYY-MM-DD). Defaults to today."`
	BusinessUnit string `short:"b" name:"bu" help:"Business unit filter; empty shows every unit."`
}

func (c *TableCmd) Run(ctx *Context) error {
	date, err := ParseDateOrToday(c.Date)
	if err != nil {
		return err
	}
	rows := projection.FlattenForTable(ctx.Store, date, c.BusinessUnit)
	if len(rows) == 0 {
		ctx.printf("No schedules for %s\n", date.ISO())
		return nil
	}
	renderRows(ctx, rows)
	return nil
}

func renderRows(ctx *Context, rows []projection.Row) {
	tw := ctx.newTable()
	tw.AppendHeader(table.Row{
		"Date", "BU", "Work Order", "Job Description", "Customer", "Work Type", "PM",
		"Task", "Project Status", "Employee", "Role", "Hours", "Notes", "Status",
	})
	for _, r := range rows {
		tw.AppendRow(table.Row{
			r.Date.ISO(), r.BusinessUnit, r.WorkOrderNumber, r.JobDescription, r.Customer, r.WorkType,
			r.ProjectManager, r.TaskInformation, r.ProjectStatus, r.EmployeeName, r.RoleCode,
			formatHours(r.BookedHours), r.Notes, r.Status,
		})
	}
	tw.Render()
}

type CalendarCmd struct {
	Month string `short:"m" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	year, month := time.Now().Year(), time.Now().Month()
	if c.Month != "" {
		var err error
		if year, month, err = projection.ParseMonth(c.Month); err != nil {
			return err
		}
	}

	m := projection.BuildMonth(ctx.Store, year, month)

	tw := ctx.newTable()
	tw.SetTitle(m.Label)
	tw.AppendHeader(table.Row{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"})
	for _, week := range m.Weeks {
		row := make(table.Row, 0, len(week))
		for _, day := range week {
			row = append(row, calendarCell(day))
		}
		tw.AppendRow(row)
	}
	tw.AppendFooter(table.Row{"", "", "", "", "", "Total", m.Total})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignCenter},
		{Number: 2, Align: text.AlignCenter},
		{Number: 3, Align: text.AlignCenter},
		{Number: 4, Align: text.AlignCenter},
		{Number: 5, Align: text.AlignCenter},
		{Number: 6, Align: text.AlignCenter},
		{Number: 7, Align: text.AlignCenter},
	})
	tw.Render()
	return nil
}

func calendarCell(day projection.CalendarDay) string {
	if !day.InMonth {
		return ""
	}
	if day.Count == 0 {
		return fmt.Sprintf("%d", day.Date.Day())
	}
	return fmt.Sprintf("%d (%d)", day.Date.Day(), day.Count)
}

// DayCmd shows every record on one day, then its resource rows.
type DayCmd struct {
	Date string `arg:"" help:"Day to show (YYYY-MM-DD)."`
}

func (c *DayCmd) Run(ctx *Context) error {
	date, err := ParseDateOrToday(c.Date)
	if err != nil {
		return err
	}

	records := projection.RecordsForDay(ctx.Store, date.ISO())
	ctx.printf("%s: %d schedule(s)\n", date.Format("Monday 2 January 2006"), len(records))
	if len(records) == 0 {
		return nil
	}

	tw := ctx.newTable()
	tw.AppendHeader(table.Row{"ID", "BU", "Work Order", "Job Description", "PM", "Project Status", "Status"})
	for _, r := range records {
		tw.AppendRow(table.Row{r.ScheduleID, r.BusinessUnit, r.WorkOrderNumber, r.JobDescription, r.ProjectManager, r.ProjectStatus, r.Status})
	}
	tw.Render()

	renderRows(ctx, projection.Flatten(records))
	return nil
}
