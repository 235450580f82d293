package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/northpower/dailysched/internal/models"
	"github.com/northpower/dailysched/internal/projection"
)

const cellWidth = 7

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			MarginBottom(1)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(cellWidth).
			Align(lipgloss.Center)

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(cellWidth).
			Align(lipgloss.Center)

	outsideStyle = dayStyle.
			Foreground(lipgloss.Color("238"))

	busyStyle = dayStyle.
			Foreground(lipgloss.Color("86")).
			Bold(true)

	selectedStyle = dayStyle.
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true)

	todayStyle = lipgloss.NewStyle().Underline(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			MarginTop(1)
)

var weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Model is a month grid with a day cursor. The month shown always follows
// the cursor.
type Model struct {
	cursor models.Date
	today  models.Date
	month  projection.Month
}

func New(today models.Date) Model {
	return Model{cursor: today, today: today}
}

// Refresh rebuilds the month around the cursor from src.
func (m *Model) Refresh(src projection.Source) {
	m.month = projection.BuildMonth(src, m.cursor.Year(), m.cursor.Month())
}

func (m Model) Selected() models.Date {
	return m.cursor
}

func (m Model) Month() projection.Month {
	return m.month
}

// MoveDays moves the cursor and reports whether it left the current month.
func (m *Model) MoveDays(n int) bool {
	before := m.cursor
	m.cursor = m.cursor.AddDays(n)
	return !m.cursor.InMonth(before.Year(), before.Month())
}

// ShiftMonth moves the cursor by whole months, clamping the day to the
// length of the target month.
func (m *Model) ShiftMonth(delta int) {
	year, month := projection.ShiftMonth(m.cursor.Year(), m.cursor.Month(), delta)
	last := models.NewDate(year, month+1, 0).Day()
	day := min(m.cursor.Day(), last)
	m.cursor = models.NewDate(year, month, day)
}

// Select jumps the cursor to d.
func (m *Model) Select(d models.Date) {
	m.cursor = d
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.month.Label))
	b.WriteString("\n")

	header := make([]string, 0, len(weekdays))
	for _, wd := range weekdays {
		header = append(header, weekdayStyle.Render(wd))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for _, week := range m.month.Weeks {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			cells = append(cells, m.renderDay(day))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString(summaryStyle.Render(fmt.Sprintf("%d schedule(s) this month · selected %s",
		m.month.Total, m.cursor.Format("Mon 2 Jan"))))
	return b.String()
}

func (m Model) renderDay(day projection.CalendarDay) string {
	label := fmt.Sprintf("%d", day.Date.Day())
	if day.Count > 0 {
		label = fmt.Sprintf("%d·%d", day.Date.Day(), day.Count)
	}
	if day.Date == m.today {
		label = todayStyle.Render(label)
	}

	switch {
	case day.Date == m.cursor:
		return selectedStyle.Render(label)
	case !day.InMonth:
		return outsideStyle.Render(label)
	case day.Count > 0:
		return busyStyle.Render(label)
	default:
		return dayStyle.Render(label)
	}
}
