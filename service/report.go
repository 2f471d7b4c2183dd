package service

import (
	"context"

	"ledger/models"

	"golang.org/x/sync/errgroup"
)

// MonthlyReport 月度报表
type MonthlyReport struct {
	Month           int              `json:"month"`
	Year            int              `json:"year"`
	Summary         *MonthlySummary  `json:"summary"`
	CategorySummary []CategoryTotal  `json:"categorySummary"`
	Expenses        ExpenseBreakdown `json:"expenses"`
}

// ExpenseBreakdown 按 Kind 分组的记录
type ExpenseBreakdown struct {
	Fixed       []models.Expense `json:"fixed"`
	Installment []models.Expense `json:"installment"`
	Variable    []models.Expense `json:"variable"`
	All         []models.Expense `json:"all"`
}

// Partition 按 Kind 分组，保持原有顺序
func Partition(list []models.Expense) ExpenseBreakdown {
	b := ExpenseBreakdown{
		Fixed:       make([]models.Expense, 0),
		Installment: make([]models.Expense, 0),
		Variable:    make([]models.Expense, 0),
		All:         list,
	}
	for _, e := range list {
		switch e.Kind() {
		case models.KindFixed:
			b.Fixed = append(b.Fixed, e)
		case models.KindInstallment:
			b.Installment = append(b.Installment, e)
		default:
			b.Variable = append(b.Variable, e)
		}
	}
	return b
}

// MonthlyReport 并发获取汇总、类别汇总与当月明细，任一失败则整体失败
func (s *ExpenseService) MonthlyReport(ctx context.Context, scope Scope, month, year int) (*MonthlyReport, error) {
	if err := validateMonth(month, year); err != nil {
		return nil, err
	}

	var (
		summary    *MonthlySummary
		categories []CategoryTotal
		expenses   []models.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.MonthlySummary(gctx, scope, month, year)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.CategorySummary(gctx, scope, month, year)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.ListByMonth(gctx, scope, month, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &MonthlyReport{
		Month:           month,
		Year:            year,
		Summary:         summary,
		CategorySummary: categories,
		Expenses:        Partition(expenses),
	}, nil
}
