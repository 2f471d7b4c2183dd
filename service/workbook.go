package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary    = "Summary"
	sheetCategories = "Categories"
	sheetExpenses   = "Expenses"
)

// ReportFileName 报表文件名，如 expenses-2024-03.xlsx
func ReportFileName(month, year int) string {
	return fmt.Sprintf("expenses-%04d-%02d.xlsx", year, month)
}

// RenderReportWorkbook 将月度报表写成 xlsx：汇总、类别、明细三个工作表
func RenderReportWorkbook(report *MonthlyReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("重命名工作表失败: %w", err)
	}
	for _, name := range []string{sheetCategories, sheetExpenses} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("创建工作表 %s 失败: %w", name, err)
		}
	}

	border := []excelize.Border{
		{Type: "left", Color: "D9D9D9", Style: 1},
		{Type: "top", Color: "D9D9D9", Style: 1},
		{Type: "bottom", Color: "D9D9D9", Style: 1},
		{Type: "right", Color: "D9D9D9", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, fmt.Errorf("创建表头样式失败: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, fmt.Errorf("创建数据样式失败: %w", err)
	}

	writeHeader := func(sheet string, headers []string) {
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}
	}

	// 汇总
	s := report.Summary
	if s == nil {
		s = &MonthlySummary{}
	}
	writeHeader(sheetSummary, []string{"Metric", "Value"})
	f.SetColWidth(sheetSummary, "A", "A", 24)
	f.SetColWidth(sheetSummary, "B", "B", 16)
	summaryRows := []struct {
		label string
		value interface{}
	}{
		{"Period", fmt.Sprintf("%04d-%02d", report.Year, report.Month)},
		{"Total expenses", s.TotalExpenses},
		{"Total amount", s.TotalAmount.InexactFloat64()},
		{"Average amount", s.AverageAmount.InexactFloat64()},
		{"Min amount", s.MinAmount.InexactFloat64()},
		{"Max amount", s.MaxAmount.InexactFloat64()},
		{"Fixed", s.FixedExpenses.InexactFloat64()},
		{"Variable", s.VariableExpenses.InexactFloat64()},
		{"Installment", s.InstallmentExpenses.InexactFloat64()},
	}
	for i, r := range summaryRows {
		row := i + 2
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), r.label)
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), r.value)
		f.SetCellStyle(sheetSummary, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), dataStyle)
	}

	// 类别
	writeHeader(sheetCategories, []string{"Category", "Count", "Total", "Average"})
	f.SetColWidth(sheetCategories, "A", "A", 24)
	f.SetColWidth(sheetCategories, "B", "D", 14)
	for i, c := range report.CategorySummary {
		row := i + 2
		name := "Uncategorized"
		if c.Name != nil {
			name = *c.Name
		}
		f.SetCellValue(sheetCategories, fmt.Sprintf("A%d", row), name)
		f.SetCellValue(sheetCategories, fmt.Sprintf("B%d", row), c.Count)
		f.SetCellValue(sheetCategories, fmt.Sprintf("C%d", row), c.Total.InexactFloat64())
		f.SetCellValue(sheetCategories, fmt.Sprintf("D%d", row), c.Average.InexactFloat64())
		f.SetCellStyle(sheetCategories, fmt.Sprintf("A%d", row), fmt.Sprintf("D%d", row), dataStyle)
	}

	// 明细
	writeHeader(sheetExpenses, []string{"ID", "Date", "Description", "Category", "Amount", "Kind", "Installment", "Notes"})
	f.SetColWidth(sheetExpenses, "A", "A", 8)
	f.SetColWidth(sheetExpenses, "B", "B", 12)
	f.SetColWidth(sheetExpenses, "C", "C", 32)
	f.SetColWidth(sheetExpenses, "D", "D", 18)
	f.SetColWidth(sheetExpenses, "E", "G", 12)
	f.SetColWidth(sheetExpenses, "H", "H", 40)
	for i, e := range report.Expenses.All {
		row := i + 2
		category := ""
		if e.CategoryName != nil {
			category = *e.CategoryName
		}
		installment := ""
		if e.IsInstallment && e.CurrentInstallment != nil && e.TotalInstallments != nil {
			installment = fmt.Sprintf("%d/%d", *e.CurrentInstallment, *e.TotalInstallments)
		}
		notes := ""
		if e.Notes != nil {
			notes = *e.Notes
		}
		f.SetCellValue(sheetExpenses, fmt.Sprintf("A%d", row), e.ID)
		f.SetCellValue(sheetExpenses, fmt.Sprintf("B%d", row), e.Date.Format("2006-01-02"))
		f.SetCellValue(sheetExpenses, fmt.Sprintf("C%d", row), e.Description)
		f.SetCellValue(sheetExpenses, fmt.Sprintf("D%d", row), category)
		f.SetCellValue(sheetExpenses, fmt.Sprintf("E%d", row), e.Amount.InexactFloat64())
		f.SetCellValue(sheetExpenses, fmt.Sprintf("F%d", row), string(e.Kind()))
		f.SetCellValue(sheetExpenses, fmt.Sprintf("G%d", row), installment)
		f.SetCellValue(sheetExpenses, fmt.Sprintf("H%d", row), notes)
		f.SetCellStyle(sheetExpenses, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), dataStyle)
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("写入工作簿失败: %w", err)
	}
	return buf, nil
}
