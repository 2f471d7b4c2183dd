package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ledger/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseService 消费记录
//
// 所有读写都接收 Scope，由调用方令牌决定；OwnedBy 时追加 user_id 条件。
// 创建与更新后的回读不在同一事务内，期间被并发删除会得到 NotFoundError。
type ExpenseService struct {
	db *gorm.DB
}

// NewExpenseService 创建消费服务
func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

// ExpenseInput 创建/更新参数
type ExpenseInput struct {
	Description        string
	Amount             *decimal.Decimal
	Date               time.Time
	CategoryID         *uint
	IsFixed            bool
	IsInstallment      bool
	TotalInstallments  *int
	CurrentInstallment *int
	Notes              *string
	UserID             uint
}

// MonthlySummary 月度汇总，金额由数据库以 DECIMAL 计算
type MonthlySummary struct {
	TotalExpenses       int64           `json:"totalExpenses"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	AverageAmount       decimal.Decimal `json:"averageAmount"`
	MinAmount           decimal.Decimal `json:"minAmount"`
	MaxAmount           decimal.Decimal `json:"maxAmount"`
	FixedExpenses       decimal.Decimal `json:"fixedExpenses"`
	VariableExpenses    decimal.Decimal `json:"variableExpenses"`
	InstallmentExpenses decimal.Decimal `json:"installmentExpenses"`
}

// CategoryTotal 按类别汇总的一行；未分类的记录 ID/Name 为 nil
type CategoryTotal struct {
	ID      *uint           `json:"id"`
	Name    *string         `json:"name"`
	Count   int64           `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
}

func (in *ExpenseInput) validate(requireUser bool) []string {
	var msgs []string
	if strings.TrimSpace(in.Description) == "" {
		msgs = append(msgs, "description is required")
	}
	if in.Amount == nil {
		msgs = append(msgs, "amount is required")
	} else if !in.Amount.IsPositive() {
		msgs = append(msgs, "amount must be greater than 0")
	}
	if in.Date.IsZero() {
		msgs = append(msgs, "date is required")
	}
	if requireUser && in.UserID == 0 {
		msgs = append(msgs, "user_id is required")
	}
	if in.IsInstallment {
		if in.TotalInstallments == nil || *in.TotalInstallments <= 0 {
			msgs = append(msgs, "total_installments must be greater than 0 for installment expenses")
		}
		if in.CurrentInstallment == nil || *in.CurrentInstallment <= 0 {
			msgs = append(msgs, "current_installment must be greater than 0 for installment expenses")
		}
	}
	return msgs
}

func (in *ExpenseInput) toModel() models.Expense {
	return models.Expense{
		Description:        strings.TrimSpace(in.Description),
		Amount:             *in.Amount,
		Date:               in.Date,
		CategoryID:         in.CategoryID,
		IsFixed:            in.IsFixed,
		IsInstallment:      in.IsInstallment,
		TotalInstallments:  in.TotalInstallments,
		CurrentInstallment: in.CurrentInstallment,
		Notes:              in.Notes,
		UserID:             in.UserID,
	}
}

// validateMonth month 取 1-12，year 必须为正
func validateMonth(month, year int) error {
	if month < 1 || month > 12 || year <= 0 {
		return NewValidationError("valid month (1-12) and year are required")
	}
	return nil
}

// monthRange 返回 [当月第一天, 下月第一天)
func monthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// withCategory 带类别名的查询
func (s *ExpenseService) withCategory(ctx context.Context, scope Scope) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("expenses AS e").
		Select("e.*, c.name AS category_name").
		Joins("LEFT JOIN categories c ON c.id = e.category_id").
		Scopes(scope.owned("e.user_id"))
}

func (s *ExpenseService) find(q *gorm.DB, op string) ([]models.Expense, error) {
	list := make([]models.Expense, 0)
	if err := q.Find(&list).Error; err != nil {
		return nil, serverError(op, err)
	}
	return list, nil
}

// List 按日期倒序
func (s *ExpenseService) List(ctx context.Context, scope Scope) ([]models.Expense, error) {
	return s.find(s.withCategory(ctx, scope).Order("e.date DESC"), "list expenses")
}

// Get 不存在与不属于调用方返回同一条 NotFound
func (s *ExpenseService) Get(ctx context.Context, scope Scope, id uint) (*models.Expense, error) {
	var exp models.Expense
	err := s.withCategory(ctx, scope).Where("e.id = ?", id).Take(&exp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Msg: "expense not found"}
	}
	if err != nil {
		return nil, serverError("find expense", err)
	}
	return &exp, nil
}

// ListByMonth 指定月份的记录，按日期倒序
func (s *ExpenseService) ListByMonth(ctx context.Context, scope Scope, month, year int) ([]models.Expense, error) {
	if err := validateMonth(month, year); err != nil {
		return nil, err
	}
	start, end := monthRange(month, year)
	q := s.withCategory(ctx, scope).
		Where("e.date >= ? AND e.date < ?", start, end).
		Order("e.date DESC")
	return s.find(q, "list expenses by month")
}

// MonthlySummary 月度汇总
// 分组与 Expense.Kind 一致：fixed 优先，installment 仅统计非固定记录
func (s *ExpenseService) MonthlySummary(ctx context.Context, scope Scope, month, year int) (*MonthlySummary, error) {
	if err := validateMonth(month, year); err != nil {
		return nil, err
	}
	start, end := monthRange(month, year)

	var summary MonthlySummary
	err := s.db.WithContext(ctx).
		Table("expenses AS e").
		Select(`COUNT(*) AS total_expenses,
			COALESCE(SUM(e.amount), 0) AS total_amount,
			COALESCE(AVG(e.amount), 0) AS average_amount,
			COALESCE(MIN(e.amount), 0) AS min_amount,
			COALESCE(MAX(e.amount), 0) AS max_amount,
			COALESCE(SUM(CASE WHEN e.is_fixed = 1 THEN e.amount ELSE 0 END), 0) AS fixed_expenses,
			COALESCE(SUM(CASE WHEN e.is_fixed = 0 AND e.is_installment = 0 THEN e.amount ELSE 0 END), 0) AS variable_expenses,
			COALESCE(SUM(CASE WHEN e.is_fixed = 0 AND e.is_installment = 1 THEN e.amount ELSE 0 END), 0) AS installment_expenses`).
		Where("e.date >= ? AND e.date < ?", start, end).
		Scopes(scope.owned("e.user_id")).
		Scan(&summary).Error
	if err != nil {
		return nil, serverError("monthly summary", err)
	}
	summary.AverageAmount = summary.AverageAmount.Round(2)
	return &summary, nil
}

// CategorySummary 按类别汇总，按合计倒序
func (s *ExpenseService) CategorySummary(ctx context.Context, scope Scope, month, year int) ([]CategoryTotal, error) {
	if err := validateMonth(month, year); err != nil {
		return nil, err
	}
	start, end := monthRange(month, year)

	rows := make([]CategoryTotal, 0)
	err := s.db.WithContext(ctx).
		Table("expenses AS e").
		Select(`c.id AS id, c.name AS name, COUNT(*) AS count,
			COALESCE(SUM(e.amount), 0) AS total,
			COALESCE(AVG(e.amount), 0) AS average`).
		Joins("LEFT JOIN categories c ON c.id = e.category_id").
		Where("e.date >= ? AND e.date < ?", start, end).
		Scopes(scope.owned("e.user_id")).
		Group("e.category_id, c.id, c.name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, serverError("category summary", err)
	}
	for i := range rows {
		rows[i].Average = rows[i].Average.Round(2)
	}
	return rows, nil
}

// ListFixed 固定支出，按金额倒序
func (s *ExpenseService) ListFixed(ctx context.Context, scope Scope) ([]models.Expense, error) {
	q := s.withCategory(ctx, scope).Where("e.is_fixed = ?", true).Order("e.amount DESC")
	return s.find(q, "list fixed expenses")
}

// ListInstallments 分期支出，按日期倒序
func (s *ExpenseService) ListInstallments(ctx context.Context, scope Scope) ([]models.Expense, error) {
	q := s.withCategory(ctx, scope).Where("e.is_installment = ?", true).Order("e.date DESC")
	return s.find(q, "list installment expenses")
}

// Create 插入后按 ID 回读
func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	if msgs := in.validate(true); len(msgs) > 0 {
		return nil, NewValidationError(msgs...)
	}

	exp := in.toModel()
	if err := s.db.WithContext(ctx).Create(&exp).Error; err != nil {
		return nil, serverError("create expense", err)
	}
	return s.Get(ctx, OwnedBy(in.UserID), exp.ID)
}

// CreateMany 单条批量 INSERT，返回插入行数，不回读
func (s *ExpenseService) CreateMany(ctx context.Context, inputs []ExpenseInput) (int64, error) {
	if len(inputs) == 0 {
		return 0, NewValidationError("a non-empty list of expenses is required")
	}

	var msgs []string
	list := make([]models.Expense, 0, len(inputs))
	for i := range inputs {
		for _, m := range inputs[i].validate(true) {
			msgs = append(msgs, fmt.Sprintf("expenses[%d]: %s", i, m))
		}
		if len(msgs) == 0 {
			list = append(list, inputs[i].toModel())
		}
	}
	if len(msgs) > 0 {
		return 0, NewValidationError(msgs...)
	}

	res := s.db.WithContext(ctx).Create(&list)
	if res.Error != nil {
		return 0, serverError("create expenses", res.Error)
	}
	return res.RowsAffected, nil
}

// Update 先按 scope 确认存在，再条件更新并回读；记录所属用户不可修改
func (s *ExpenseService) Update(ctx context.Context, scope Scope, id uint, in ExpenseInput) (*models.Expense, error) {
	if msgs := in.validate(false); len(msgs) > 0 {
		return nil, NewValidationError(msgs...)
	}
	if _, err := s.Get(ctx, scope, id); err != nil {
		return nil, err
	}

	exp := in.toModel()
	err := s.db.WithContext(ctx).Model(&models.Expense{}).
		Where("id = ?", id).
		Scopes(scope.owned("user_id")).
		Updates(map[string]interface{}{
			"description":         exp.Description,
			"amount":              exp.Amount,
			"date":                exp.Date,
			"category_id":         exp.CategoryID,
			"is_fixed":            exp.IsFixed,
			"is_installment":      exp.IsInstallment,
			"total_installments":  exp.TotalInstallments,
			"current_installment": exp.CurrentInstallment,
			"notes":               exp.Notes,
		}).Error
	if err != nil {
		return nil, serverError("update expense", err)
	}
	return s.Get(ctx, scope, id)
}

// Delete 先按 scope 确认存在，再条件删除
func (s *ExpenseService) Delete(ctx context.Context, scope Scope, id uint) error {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		Scopes(scope.owned("user_id")).
		Delete(&models.Expense{}).Error
	if err != nil {
		return serverError("delete expense", err)
	}
	return nil
}
