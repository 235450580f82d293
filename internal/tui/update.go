package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/northpower/dailysched/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.dayTable.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case StateEditing:
		return m.updateForm(msg, (*Model).submitSchedule)
	case StateImport:
		return m.updateForm(msg, (*Model).submitImport)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
	case key.Matches(keyMsg, m.keys.Add):
		return m, m.openScheduleForm()
	case key.Matches(keyMsg, m.keys.Import):
		return m, m.openImportForm()
	case key.Matches(keyMsg, m.keys.Export):
		m.export()
	case key.Matches(keyMsg, m.keys.Filter):
		m.cycleBusinessUnit()
	case key.Matches(keyMsg, m.keys.Today):
		m.calendar.Select(models.Today())
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.calendar.ShiftMonth(-1)
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.calendar.ShiftMonth(1)
	case key.Matches(keyMsg, m.keys.Left):
		m.calendar.MoveDays(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.calendar.MoveDays(1)
	default:
		if m.state == StateTable {
			cmd := m.updateTable(keyMsg)
			m.refresh()
			return m, cmd
		}
		m.updateCalendar(keyMsg)
	}

	m.refresh()
	return m, nil
}

func (m *Model) updateCalendar(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.calendar.MoveDays(-7)
	case key.Matches(msg, m.keys.Down):
		m.calendar.MoveDays(7)
	case key.Matches(msg, m.keys.Enter):
		m.state = StateTable
	}
}

func (m *Model) updateTable(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = StateCalendar
		return nil
	case key.Matches(msg, m.keys.Copy):
		m.copyResources()
		return nil
	}
	var cmd tea.Cmd
	m.dayTable, cmd = m.dayTable.Update(msg)
	return cmd
}

// updateForm drives the active huh form. onComplete runs once the form is
// submitted and returns the command for whatever it shows next.
func (m Model) updateForm(msg tea.Msg, onComplete func(*Model) tea.Cmd) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		cmds = append(cmds, onComplete(&m))
	case huh.StateAborted:
		m.closeForm()
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) closeForm() {
	m.state = m.previousState
	m.form = nil
	m.refresh()
}
