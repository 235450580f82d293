package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/northpower/dailysched/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateCalendar:
		content = docStyle.Render(m.calendar.View())
	case StateTable:
		content = docStyle.Render(m.dayTable.View())
	case StateEditing, StateImport:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewMessage(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	parts := []string{appTitleStyle.Render(constants.AppTitle)}
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			parts = append(parts, activeTabStyle.Render(title))
		} else {
			parts = append(parts, inactiveTabStyle.Render(title))
		}
	}
	if m.businessUnit != "" {
		parts = append(parts, filterStyle.Render("BU: "+m.businessUnit))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewMessage() string {
	switch {
	case m.warning != "":
		return warningStyle.Render("⚠ " + m.warning)
	case m.status != "":
		return statusStyle.Render(m.status)
	}
	return ""
}
