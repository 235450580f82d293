// Package tui is the interactive calendar and day-detail view over a session.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/northpower/dailysched/internal/catalog"
	"github.com/northpower/dailysched/internal/models"
	"github.com/northpower/dailysched/internal/session"
	"github.com/northpower/dailysched/internal/tui/components/calendar"
	"github.com/northpower/dailysched/internal/tui/components/daytable"
	"github.com/northpower/dailysched/internal/validation"
)

type SessionState int

const (
	StateCalendar SessionState = iota
	StateTable
	StateEditing
	StateImport
)

// tabCount is the number of states reachable with tab.
const tabCount = 2

var tabTitles = []string{"Calendar", "Day"}

type Model struct {
	session       *session.Session
	validator     *validation.Validator
	catalog       *catalog.Catalog
	exportPath    string
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	calendar      calendar.Model
	dayTable      daytable.Model
	form          *huh.Form
	scheduleForm  *ScheduleFormModel
	importForm    *ImportFormModel
	businessUnit  string // "" shows every unit
	warning       string
	status        string
	quitting      bool
	width         int
	height        int
}

// NewModel builds the root model over sess. exportPath is where 'e' writes.
func NewModel(sess *session.Session, v *validation.Validator, cat *catalog.Catalog, exportPath string) Model {
	if cat == nil {
		cat = catalog.Default()
	}
	if v == nil {
		v = validation.New(validation.DefaultPolicy(), cat)
	}
	m := Model{
		session:    sess,
		validator:  v,
		catalog:    cat,
		exportPath: exportPath,
		state:      StateCalendar,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		calendar:   calendar.New(models.Today()),
		dayTable:   daytable.New(10),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Add}
	switch m.state {
	case StateCalendar:
		keys = append(keys, m.keys.Enter, m.keys.PrevMonth, m.keys.NextMonth)
	case StateTable:
		keys = append(keys, m.keys.Copy, m.keys.Filter, m.keys.Back)
	}
	return append(keys, m.keys.Export)
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Enter, m.keys.Back, m.keys.Today}
	actions := []key.Binding{m.keys.Add, m.keys.Export, m.keys.Import, m.keys.Filter}

	switch m.state {
	case StateCalendar:
		navigation = append(navigation, m.keys.PrevMonth, m.keys.NextMonth)
	case StateTable:
		actions = append(actions, m.keys.Copy)
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh re-derives both views from the store.
func (m *Model) refresh() {
	m.calendar.Refresh(m.session.Store)
	m.dayTable.Refresh(m.session.Store, m.calendar.Selected(), m.businessUnit)
}

func (m *Model) setWarning(msg string) {
	m.warning = msg
	m.status = ""
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.warning = ""
}
