package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/northpower/dailysched/internal/codec"
	"github.com/northpower/dailysched/internal/logger"
)

// openScheduleForm shows a blank form for the selected day. Resources copied
// with 'c' are applied once and then dropped.
func (m *Model) openScheduleForm() tea.Cmd {
	fm := newScheduleFormModel(m.calendar.Selected())
	fm.BusinessUnit = m.businessUnit
	if resources, ok := m.session.Prefill.TakeOnce(); ok {
		for _, a := range resources {
			fm.Resources = append(fm.Resources, a.Label())
		}
	}
	m.scheduleForm = fm
	m.form = NewScheduleForm(fm, m.catalog)
	m.previousState = m.state
	m.state = StateEditing
	return m.form.Init()
}

// submitSchedule validates the completed form. A rejected candidate keeps
// every value and reopens the form with the missing fields listed.
func (m *Model) submitSchedule() tea.Cmd {
	candidate, err := m.scheduleForm.Candidate(m.catalog)
	if err != nil {
		m.setWarning(err.Error())
		return m.reopenScheduleForm()
	}

	if err := m.validator.Validate(candidate).Err(); err != nil {
		logger.Warn("Schedule rejected", "work_order", candidate.WorkOrderNumber, "error", err)
		m.setWarning(err.Error())
		return m.reopenScheduleForm()
	}

	record := candidate.WithDerivedID()
	_, existed := m.session.Store.Get(record.ScheduleID)
	m.session.Store.Upsert(record)
	logger.Info("Schedule saved", "id", record.ScheduleID, "replaced", existed, "session", m.session.ID)

	verb := "Saved"
	if existed {
		verb = "Updated"
	}
	m.setStatus(fmt.Sprintf("✓ %s schedule %s", verb, record.ScheduleID))
	m.calendar.Select(record.ScheduleDate)
	m.closeForm()
	return nil
}

func (m *Model) reopenScheduleForm() tea.Cmd {
	m.form = NewScheduleForm(m.scheduleForm, m.catalog)
	return m.form.Init()
}

func (m *Model) openImportForm() tea.Cmd {
	m.importForm = &ImportFormModel{Path: m.exportPath}
	m.form = NewImportForm(m.importForm)
	m.previousState = m.state
	m.state = StateImport
	return m.form.Init()
}

func (m *Model) submitImport() tea.Cmd {
	m.importFrom(strings.TrimSpace(m.importForm.Path))
	m.closeForm()
	return nil
}

// importFrom merges a file into the store. A bad file leaves the store as it was.
func (m *Model) importFrom(path string) {
	records, err := codec.ImportFile(path)
	if err != nil {
		logger.Error("Import failed", "path", path, "error", err)
		m.setWarning(fmt.Sprintf("Import failed: %v", err))
		return
	}
	m.session.Store.ReplaceAll(records)
	logger.Info("Imported schedules", "path", path, "records", len(records))
	m.setStatus(fmt.Sprintf("✓ Imported %d schedule(s) from %s", len(records), path))
}

func (m *Model) export() {
	n, err := codec.ExportFile(m.exportPath, m.session.Store)
	if err != nil {
		logger.Error("Export failed", "path", m.exportPath, "error", err)
		m.setWarning(fmt.Sprintf("Export failed: %v", err))
		return
	}
	logger.Info("Exported schedules", "path", m.exportPath, "records", m.session.Store.Len(), "bytes", n)
	m.setStatus(fmt.Sprintf("✓ Exported %d schedule(s) to %s", m.session.Store.Len(), m.exportPath))
}

// copyResources holds the selected record's resources for the next new form.
func (m *Model) copyResources() {
	row, ok := m.dayTable.Selected()
	if !ok {
		m.setWarning("No schedule selected")
		return
	}
	record, ok := m.session.Store.Get(row.ScheduleID)
	if !ok || len(record.Resources) == 0 {
		m.setWarning("Selected schedule has no resources to copy")
		return
	}
	m.session.Prefill.Set(slices.Clone(record.Resources))
	m.setStatus(fmt.Sprintf("Copied %d resource(s) from %s. Press 'a' to use them.", len(record.Resources), record.ScheduleID))
}

// cycleBusinessUnit steps the day filter through "all" and each catalog unit.
func (m *Model) cycleBusinessUnit() {
	units := append([]string{""}, m.catalog.BusinessUnits...)
	i := slices.Index(units, m.businessUnit)
	m.businessUnit = units[(i+1)%len(units)]
}
