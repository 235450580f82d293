package projection

import (
	"fmt"
	"time"

	"github.com/northpower/dailysched/internal/constants"
	"github.com/northpower/dailysched/internal/models"
)

// GridDay is one cell of a month calendar.
type GridDay struct {
	Date    models.Date
	InMonth bool
}

// CalendarDay is a grid cell with the number of records on that day.
type CalendarDay struct {
	GridDay
	Count int
}

// Month is the calendar view model: Monday-first weeks covering the month.
type Month struct {
	Year  int
	Month time.Month
	Label string
	Weeks [][]CalendarDay
	Total int
}

// DayCounts maps YYYY-MM-DD to the number of records on that day for one
// month. Days without records are absent.
func DayCounts(src Source, year int, month time.Month) map[string]int {
	counts := make(map[string]int)
	for r := range src.All() {
		if r.ScheduleDate.InMonth(year, month) {
			counts[r.ScheduleDate.ISO()]++
		}
	}
	return counts
}

// MonthGrid returns the days from the Monday on or before the 1st through the
// Sunday on or after the last day of the month.
func MonthGrid(year int, month time.Month) []GridDay {
	first := models.NewDate(year, month, 1)
	last := models.NewDate(year, month+1, 0)

	start := first.AddDays(-daysSinceMonday(first.Weekday()))
	end := last.AddDays(6 - daysSinceMonday(last.Weekday()))

	var grid []GridDay
	for d := start; !d.After(end.Time); d = d.AddDays(1) {
		grid = append(grid, GridDay{Date: d, InMonth: d.InMonth(year, month)})
	}
	return grid
}

// BuildMonth combines the grid with day counts, split into weeks.
func BuildMonth(src Source, year int, month time.Month) Month {
	counts := DayCounts(src, year, month)
	grid := MonthGrid(year, month)

	m := Month{
		Year:  year,
		Month: month,
		Label: MonthLabel(year, month),
	}
	for i := 0; i < len(grid); i += 7 {
		week := make([]CalendarDay, 0, 7)
		for _, g := range grid[i : i+7] {
			day := CalendarDay{GridDay: g}
			if g.InMonth {
				day.Count = counts[g.Date.ISO()]
				m.Total += day.Count
			}
			week = append(week, day)
		}
		m.Weeks = append(m.Weeks, week)
	}
	return m
}

// MonthLabel renders a month as "March 2024".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}

// ShiftMonth moves a year/month pair by delta months.
func ShiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// ParseMonth parses a YYYY-MM value.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}

func daysSinceMonday(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
