// Package report renders schedule projections as spreadsheet and calendar files.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/northpower/dailysched/internal/projection"
)

const SheetName = "Schedules"

var xlsxHeader = []string{
	"Date", "Business Unit", "Work Order", "Job Description", "Customer", "Work Type",
	"Project Manager", "Task", "Project Status", "Employee", "Role", "Hours", "Notes", "Status",
}

// WriteXLSX writes a single-sheet workbook: a title row, a header row and one
// row per table row.
func WriteXLSX(w io.Writer, rows []projection.Row, title string) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := writeXLSXHeader(f, title); err != nil {
		return err
	}

	for i, r := range rows {
		values := []any{
			r.Date.ISO(), r.BusinessUnit, r.WorkOrderNumber, r.JobDescription, r.Customer, r.WorkType,
			r.ProjectManager, r.TaskInformation, r.ProjectStatus, r.EmployeeName, r.RoleCode,
			hoursCell(r.BookedHours), r.Notes, string(r.Status),
		}
		if err := f.SetSheetRow(SheetName, cell("A", i+3), &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeXLSXHeader(f *excelize.File, title string) error {
	lastCol := colName(len(xlsxHeader) - 1)
	if err := f.SetColWidth(SheetName, "A", lastCol, 16); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(SheetName, "D", "D", 32); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 13},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetCellValue(SheetName, "A1", title); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	if err := f.MergeCell(SheetName, "A1", cell(lastCol, 1)); err != nil {
		return fmt.Errorf("failed to merge title: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "A1", titleStyle); err != nil {
		return fmt.Errorf("failed to style title: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A2", &xlsxHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A2", cell(lastCol, 2), headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}

func hoursCell(h *float64) any {
	if h == nil {
		return ""
	}
	return *h
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
