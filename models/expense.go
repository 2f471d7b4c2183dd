package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense 消费记录模型
type Expense struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	Description        string          `json:"description" gorm:"size:255;not null"`
	Amount             decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Date               time.Time       `json:"date" gorm:"type:date;not null;index"`
	CategoryID         *uint           `json:"category_id" gorm:"index"`
	CategoryName       *string         `json:"category_name" gorm:"->;-:migration"` // LEFT JOIN categories 得到，只读
	IsFixed            bool            `json:"is_fixed" gorm:"not null;default:false"`
	IsInstallment      bool            `json:"is_installment" gorm:"not null;default:false"`
	TotalInstallments  *int            `json:"total_installments"`
	CurrentInstallment *int            `json:"current_installment"`
	Notes              *string         `json:"notes" gorm:"size:500"`
	UserID             uint            `json:"user_id" gorm:"index;not null"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// ExpenseKind 消费类型，报表分组用
type ExpenseKind string

const (
	KindFixed       ExpenseKind = "fixed"
	KindInstallment ExpenseKind = "installment"
	KindVariable    ExpenseKind = "variable"
)

// Kind 按标记优先级归类：固定优先，其次分期，否则为可变
// 两个标记同时为 true 的记录只归入 fixed
func (e *Expense) Kind() ExpenseKind {
	switch {
	case e.IsFixed:
		return KindFixed
	case e.IsInstallment:
		return KindInstallment
	default:
		return KindVariable
	}
}
