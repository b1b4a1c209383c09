// File path: internal/report/report.go
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bidscope/bidscope/internal/analysis"
)

// Row kinds in the detail sheet.
const (
	KindMainTask = "Main Task"
	KindSubtask  = "Subtask"
)

// Row is one line of the detail sheet. Main tasks and their subtasks
// interleave in order-index order.
type Row struct {
	Module      string
	Kind        string
	TaskID      string
	Name        string
	Description string
	Priority    string
	Hours       float64
	Cost        float64
	Complexity  string
	Category    string
	ParentTask  string
	CreatedDate string
}

var detailHeaders = []string{
	"Module", "Task Type", "Task ID", "Task Name", "Description", "Priority",
	"Estimated Hours", "Estimated Cost", "Complexity", "Category", "Parent Task", "Created Date",
}

// DetailRows flattens tasks and their subtasks into detail sheet rows.
func DetailRows(tasks []analysis.Task) []Row {
	var rows []Row
	for _, task := range tasks {
		module := task.Module
		if module == "" {
			module = "General"
		}
		category := task.Category
		if category == "" {
			category = "Development"
		}
		rows = append(rows, Row{
			Module:      module,
			Kind:        KindMainTask,
			TaskID:      fmt.Sprintf("%d", task.OrderIndex),
			Name:        task.Title,
			Description: task.Description,
			Priority:    displayPriority(task.Priority),
			Hours:       task.EstimatedHours,
			Cost:        task.EstimatedCost,
			Complexity:  task.Complexity,
			Category:    category,
			CreatedDate: formatDate(task.CreatedAt),
		})
		for _, sub := range task.Subtasks {
			rows = append(rows, Row{
				Module:      module,
				Kind:        KindSubtask,
				TaskID:      fmt.Sprintf("%d.%d", task.OrderIndex, sub.OrderIndex),
				Name:        sub.Title,
				Description: sub.Description,
				Priority:    displayPriority(sub.Priority),
				Hours:       sub.EstimatedHours,
				Cost:        sub.EstimatedCost,
				Complexity:  "Standard",
				Category:    "Development",
				ParentTask:  task.Title,
				CreatedDate: formatDate(sub.CreatedAt),
			})
		}
	}
	return rows
}

func displayPriority(p string) string {
	switch p {
	case analysis.PriorityLow:
		return "Low"
	case analysis.PriorityHigh:
		return "High"
	case analysis.PriorityCritical:
		return "Critical"
	default:
		return "Medium"
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// ModuleTotal aggregates one module's task rows.
type ModuleTotal struct {
	Module string
	Tasks  int
	Hours  float64
	Cost   float64
}

// Summary aggregates the breakdown at the task level. Subtask hours are
// informational in the detail sheet and do not contribute here.
type Summary struct {
	ModuleTotals   []ModuleTotal
	PriorityCounts map[string]int
	TotalTasks     int
	TotalHours     float64
	TotalCost      float64
}

// Summarize folds tasks into module and priority aggregates, keeping
// modules in first-appearance order.
func Summarize(tasks []analysis.Task) Summary {
	summary := Summary{PriorityCounts: map[string]int{"High": 0, "Medium": 0, "Low": 0}}
	index := make(map[string]int)
	for _, task := range tasks {
		module := task.Module
		if module == "" {
			module = "General"
		}
		i, ok := index[module]
		if !ok {
			i = len(summary.ModuleTotals)
			index[module] = i
			summary.ModuleTotals = append(summary.ModuleTotals, ModuleTotal{Module: module})
		}
		summary.ModuleTotals[i].Tasks++
		summary.ModuleTotals[i].Hours += task.EstimatedHours
		summary.ModuleTotals[i].Cost += task.EstimatedCost

		summary.PriorityCounts[displayPriority(task.Priority)]++
		summary.TotalTasks++
		summary.TotalHours += task.EstimatedHours
		summary.TotalCost += task.EstimatedCost
	}
	return summary
}

const (
	detailSheet  = "Task Breakdown"
	summarySheet = "Summary"

	// Detail table starts below the project banner.
	headerRow = 7
)

// Build renders the two-sheet workbook for a document's breakdown.
func Build(doc analysis.Document, rec analysis.Analysis, tasks []analysis.Task) (*excelize.File, error) {
	if len(tasks) == 0 {
		return nil, analysis.ErrNoTasks
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", detailSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	summary := Summarize(tasks)
	rows := DetailRows(tasks)

	// Project banner.
	banner := [][2]string{
		{"A1", fmt.Sprintf("Document: %s", doc.Filename)},
		{"A2", fmt.Sprintf("Complexity: %s", rec.ComplexityLevel)},
		{"A3", fmt.Sprintf("Total Tasks: %d", summary.TotalTasks)},
		{"A4", fmt.Sprintf("Total Hours: %.1f", summary.TotalHours)},
		{"A5", fmt.Sprintf("Export Date: %s", time.Now().Format("2006-01-02 15:04:05"))},
	}
	bannerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, fmt.Errorf("banner style: %w", err)
	}
	for _, cell := range banner {
		if err := f.SetCellValue(detailSheet, cell[0], cell[1]); err != nil {
			return nil, fmt.Errorf("banner cell: %w", err)
		}
	}
	if err := f.SetCellStyle(detailSheet, "A1", "A5", bannerStyle); err != nil {
		return nil, fmt.Errorf("banner style apply: %w", err)
	}

	if err := writeDetailTable(f, rows); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, summary); err != nil {
		return nil, err
	}
	return f, nil
}

func writeDetailTable(f *excelize.File, rows []Row) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	mainTaskStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E7F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("main task style: %w", err)
	}
	subtaskStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F9F9F9"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("subtask style: %w", err)
	}
	priorityStyles := make(map[string]int, 3)
	for priority, colors := range map[string][2]string{
		"High":   {"FFE6E6", "CC0000"},
		"Medium": {"FFF2E6", "FF6600"},
		"Low":    {"E6F7E6", "009900"},
	} {
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Color: colors[1]},
			Fill: excelize.Fill{Type: "pattern", Color: []string{colors[0]}, Pattern: 1},
		})
		if err != nil {
			return fmt.Errorf("priority style: %w", err)
		}
		priorityStyles[priority] = id
	}

	for i, header := range detailHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(detailSheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		if err := f.SetCellStyle(detailSheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	widths := make([]float64, len(detailHeaders))
	for i, header := range detailHeaders {
		widths[i] = float64(len(header))
	}
	for rowIdx, row := range rows {
		rowNum := headerRow + 1 + rowIdx
		values := []interface{}{
			row.Module, row.Kind, row.TaskID, row.Name, row.Description, row.Priority,
			row.Hours, row.Cost, row.Complexity, row.Category, row.ParentTask, row.CreatedDate,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(detailSheet, cell, value); err != nil {
				return fmt.Errorf("write cell: %w", err)
			}
			if width := float64(len(fmt.Sprint(value))); width > widths[col] {
				widths[col] = width
			}
		}
		kindCell, _ := excelize.CoordinatesToCellName(2, rowNum)
		style := subtaskStyle
		if row.Kind == KindMainTask {
			style = mainTaskStyle
		}
		if err := f.SetCellStyle(detailSheet, kindCell, kindCell, style); err != nil {
			return fmt.Errorf("style kind: %w", err)
		}
		if style, ok := priorityStyles[row.Priority]; ok {
			priorityCell, _ := excelize.CoordinatesToCellName(6, rowNum)
			if err := f.SetCellStyle(detailSheet, priorityCell, priorityCell, style); err != nil {
				return fmt.Errorf("style priority: %w", err)
			}
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if width > 50 {
			width = 50
		}
		if err := f.SetColWidth(detailSheet, col, col, width+2); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, summary Summary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return fmt.Errorf("title style: %w", err)
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return fmt.Errorf("section style: %w", err)
	}

	set := func(cell string, value interface{}) error {
		return f.SetCellValue(summarySheet, cell, value)
	}
	if err := set("A1", "PROJECT SUMMARY"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A1", titleStyle); err != nil {
		return err
	}

	if err := set("A3", "Module Breakdown"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A3", "A3", sectionStyle); err != nil {
		return err
	}
	for i, header := range []string{"Module", "Tasks", "Hours", "Cost"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		if err := set(cell, header); err != nil {
			return err
		}
	}
	row := 5
	for _, total := range summary.ModuleTotals {
		if err := set(fmt.Sprintf("A%d", row), total.Module); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("B%d", row), total.Tasks); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("C%d", row), total.Hours); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("D%d", row), fmt.Sprintf("$%.2f", total.Cost)); err != nil {
			return err
		}
		row++
	}

	row++
	if err := set(fmt.Sprintf("A%d", row), "Priority Breakdown"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), sectionStyle); err != nil {
		return err
	}
	row++
	if err := set(fmt.Sprintf("A%d", row), "Priority"); err != nil {
		return err
	}
	if err := set(fmt.Sprintf("B%d", row), "Count"); err != nil {
		return err
	}
	for _, priority := range []string{"Critical", "High", "Medium", "Low"} {
		count, ok := summary.PriorityCounts[priority]
		if !ok {
			continue
		}
		row++
		if err := set(fmt.Sprintf("A%d", row), priority); err != nil {
			return err
		}
		if err := set(fmt.Sprintf("B%d", row), count); err != nil {
			return err
		}
	}

	row += 2
	if err := set(fmt.Sprintf("A%d", row), "TOTALS"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), sectionStyle); err != nil {
		return err
	}
	totals := []string{
		fmt.Sprintf("Total Tasks: %d", summary.TotalTasks),
		fmt.Sprintf("Total Hours: %.1f", summary.TotalHours),
		fmt.Sprintf("Total Cost: $%.2f", summary.TotalCost),
	}
	for _, line := range totals {
		row++
		if err := set(fmt.Sprintf("A%d", row), line); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 36); err != nil {
		return err
	}
	return nil
}

// Filename derives the attachment name for a document's export.
func Filename(doc analysis.Document) string {
	base := strings.TrimSuffix(doc.Filename, ".txt")
	base = strings.TrimSuffix(base, ".md")
	if base == "" {
		base = doc.ID
	}
	return fmt.Sprintf("%s_task_breakdown.xlsx", base)
}
