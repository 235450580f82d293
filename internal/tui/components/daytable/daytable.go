package daytable

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/northpower/dailysched/internal/models"
	"github.com/northpower/dailysched/internal/projection"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

var columns = []table.Column{
	{Title: "BU", Width: 5},
	{Title: "Work Order", Width: 12},
	{Title: "Job Description", Width: 24},
	{Title: "Customer", Width: 9},
	{Title: "Work Type", Width: 16},
	{Title: "PM", Width: 14},
	{Title: "Project Status", Width: 14},
	{Title: "Employee", Width: 12},
	{Title: "Role", Width: 6},
	{Title: "Hours", Width: 5},
	{Title: "Status", Width: 10},
}

// Model shows the flattened resource rows for one day.
type Model struct {
	table        table.Model
	rows         []projection.Row
	date         models.Date
	businessUnit string
}

func New(height int) Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return Model{table: t}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Refresh reloads the rows for date and business unit ("" for every unit).
func (m *Model) Refresh(src projection.Source, date models.Date, businessUnit string) {
	m.date = date
	m.businessUnit = businessUnit
	m.rows = projection.FlattenForTable(src, date, businessUnit)

	rows := make([]table.Row, 0, len(m.rows))
	for _, r := range m.rows {
		rows = append(rows, table.Row{
			r.BusinessUnit, r.WorkOrderNumber, r.JobDescription, r.Customer, r.WorkType,
			r.ProjectManager, r.ProjectStatus, r.EmployeeName, r.RoleCode, hours(r.BookedHours), string(r.Status),
		})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *Model) SetHeight(h int) {
	m.table.SetHeight(max(h, 3))
}

// Selected returns the row under the cursor.
func (m Model) Selected() (projection.Row, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return projection.Row{}, false
	}
	return m.rows[i], true
}

func (m Model) Len() int {
	return len(m.rows)
}

func (m Model) View() string {
	scope := "all business units"
	if m.businessUnit != "" {
		scope = m.businessUnit
	}
	title := titleStyle.Render(fmt.Sprintf("%s · %s", m.date.Format("Monday 2 January 2006"), scope))
	if len(m.rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", emptyStyle.Render("No schedules for this day. Press 'a' to add one."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, baseStyle.Render(m.table.View()))
}

func hours(h *float64) string {
	if h == nil {
		return ""
	}
	return humanize.Ftoa(*h)
}
