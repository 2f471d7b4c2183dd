package service

import (
	"context"
	"errors"
	"testing"

	"ledger/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var summaryColumns = []string{
	"total_expenses", "total_amount", "average_amount", "min_amount", "max_amount",
	"fixed_expenses", "variable_expenses", "installment_expenses",
}

func TestPartition(t *testing.T) {
	list := []models.Expense{
		{ID: 1, IsFixed: true},
		{ID: 2, IsInstallment: true},
		{ID: 3},
		{ID: 4, IsFixed: true, IsInstallment: true},
	}

	b := Partition(list)
	assert.Len(t, b.All, 4)
	require.Len(t, b.Fixed, 2)
	assert.Equal(t, uint(1), b.Fixed[0].ID)
	// 同时标记固定与分期时只归入 fixed
	assert.Equal(t, uint(4), b.Fixed[1].ID)
	require.Len(t, b.Installment, 1)
	assert.Equal(t, uint(2), b.Installment[0].ID)
	require.Len(t, b.Variable, 1)
	assert.Equal(t, uint(3), b.Variable[0].ID)

	empty := Partition(nil)
	assert.NotNil(t, empty.Fixed)
	assert.NotNil(t, empty.Variable)
}

func TestExpenseService_MonthlyReport(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	svc := NewExpenseService(db)

	// 三个查询并发执行，顺序不确定
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("AS total_expenses").
		WillReturnRows(sqlmock.NewRows(summaryColumns).
			AddRow(3, "1080.00", "360.00", "30.00", "900.00", "900.00", "30.00", "150.00"))
	mock.ExpectQuery("GROUP BY e\\.category_id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count", "total", "average"}).
			AddRow(1, "Food", 3, "1080.00", "360.00"))
	mock.ExpectQuery(expenseSelect).
		WillReturnRows(sqlmock.NewRows(expenseColumns).
			AddRow(expenseRow(1, "Rent", "900", true, false, 3)...).
			AddRow(expenseRow(2, "Laptop", "150", false, true, 3)...).
			AddRow(expenseRow(3, "Lunch", "30", false, false, 3)...))

	report, err := svc.MonthlyReport(context.Background(), OwnedBy(3), 3, 2024)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Month)
	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, int64(3), report.Summary.TotalExpenses)
	assert.Len(t, report.CategorySummary, 1)
	assert.Len(t, report.Expenses.All, 3)
	assert.Len(t, report.Expenses.Fixed, 1)
	assert.Len(t, report.Expenses.Installment, 1)
	assert.Len(t, report.Expenses.Variable, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpenseService_MonthlyReport_Failure(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	svc := NewExpenseService(db)

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("AS total_expenses").WillReturnError(errors.New("deadlock"))
	mock.ExpectQuery("GROUP BY e\\.category_id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count", "total", "average"}))
	mock.ExpectQuery(expenseSelect).WillReturnRows(sqlmock.NewRows(expenseColumns))

	report, err := svc.MonthlyReport(context.Background(), Unrestricted(), 3, 2024)
	assert.Nil(t, report)
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "monthly summary", se.Op)
}

func TestExpenseService_MonthlyReport_InvalidMonth(t *testing.T) {
	svc := NewExpenseService(nil)
	_, err := svc.MonthlyReport(context.Background(), Unrestricted(), 13, 2024)
	assert.True(t, IsValidation(err))
}

func TestRenderReportWorkbook(t *testing.T) {
	name := "Food"
	report := &MonthlyReport{
		Month:           3,
		Year:            2024,
		Summary:         &MonthlySummary{TotalExpenses: 1},
		CategorySummary: []CategoryTotal{{Name: &name, Count: 1}, {Count: 2}},
		Expenses: Partition([]models.Expense{
			{ID: 7, Description: "Laptop", IsInstallment: true, TotalInstallments: intPtr(12), CurrentInstallment: intPtr(2)},
		}),
	}

	buf, err := RenderReportWorkbook(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetSummary, sheetCategories, sheetExpenses}, f.GetSheetList())

	v, err := f.GetCellValue(sheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", v)

	v, _ = f.GetCellValue(sheetCategories, "A3")
	assert.Equal(t, "Uncategorized", v)

	v, _ = f.GetCellValue(sheetExpenses, "C2")
	assert.Equal(t, "Laptop", v)
	v, _ = f.GetCellValue(sheetExpenses, "F2")
	assert.Equal(t, "installment", v)
	v, _ = f.GetCellValue(sheetExpenses, "G2")
	assert.Equal(t, "2/12", v)
}

func TestReportFileName(t *testing.T) {
	assert.Equal(t, "expenses-2024-03.xlsx", ReportFileName(3, 2024))
}
