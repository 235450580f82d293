package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/northpower/dailysched/internal/logger"
	"github.com/northpower/dailysched/internal/models"
	"github.com/northpower/dailysched/internal/projection"
	"github.com/northpower/dailysched/internal/report"
)

// ReportScope selects the records a report covers: a month when --month is
// set, otherwise a single day.
type ReportScope struct {
	Date         string `short:"d" help:"Day to report (YYYY-MM-DD). Defaults to today."`
	Month        string `short:"m" help:"Month to report (YYYY-MM); overrides --date."`
	BusinessUnit string `short:"b" name:"bu" help:"Business unit filter; empty covers every unit."`
	Out          string `short:"o" help:"Destination file." type:"path" required:""`
}

func (s ReportScope) records(ctx *Context) ([]models.ScheduleRecord, string, error) {
	var (
		records []models.ScheduleRecord
		label   string
	)
	if s.Month != "" {
		year, month, err := projection.ParseMonth(s.Month)
		if err != nil {
			return nil, "", err
		}
		records = projection.RecordsForMonth(ctx.Store, year, month)
		label = projection.MonthLabel(year, month)
	} else {
		date, err := ParseDateOrToday(s.Date)
		if err != nil {
			return nil, "", err
		}
		records = projection.RecordsForDay(ctx.Store, date.ISO())
		label = date.ISO()
	}

	if s.BusinessUnit == "" {
		return records, label, nil
	}
	filtered := records[:0]
	for _, r := range records {
		if r.BusinessUnit == s.BusinessUnit {
			filtered = append(filtered, r)
		}
	}
	return filtered, s.BusinessUnit + " " + label, nil
}

func (s ReportScope) write(ctx *Context, kind string, data []byte, records int) error {
	if err := os.WriteFile(s.Out, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	logger.Info("Report written", "kind", kind, "path", s.Out, "records", records)
	ctx.printf("✓ Wrote %s report for %d schedule(s) to %s (%s)\n", kind, records, s.Out, humanize.Bytes(uint64(len(data))))
	return nil
}

type ReportXLSXCmd struct {
	ReportScope `embed:""`
}

func (c *ReportXLSXCmd) Run(ctx *Context) error {
	records, label, err := c.records(ctx)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := report.WriteXLSX(&buf, projection.Flatten(records), "Schedules: "+label); err != nil {
		return err
	}
	return c.write(ctx, "XLSX", buf.Bytes(), len(records))
}

type ReportICSCmd struct {
	ReportScope `embed:""`
	Name string `help:"Calendar name." default:"Daily Schedule"`
}

func (c *ReportICSCmd) Run(ctx *Context) error {
	records, _, err := c.records(ctx)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := report.WriteICS(&buf, records, c.Name); err != nil {
		return err
	}
	return c.write(ctx, "ICS", buf.Bytes(), len(records))
}

type ReportCmd struct {
	XLSX ReportXLSXCmd `cmd:"" name:"xlsx" help:"Write a spreadsheet of resource rows."`
	ICS  ReportICSCmd  `cmd:"" name:"ics" help:"Write an iCalendar file with one all-day event per schedule."`
}
