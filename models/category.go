package models

import (
	"time"
)

// Category 消费类别
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:50;not null"`
	Description string    `json:"description" gorm:"size:255;not null;default:''"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// DefaultCategories 空表时写入的默认类别
func DefaultCategories() []Category {
	return []Category{
		{Name: "Housing", Description: "Rent, mortgage, maintenance"},
		{Name: "Food", Description: "Groceries and restaurants"},
		{Name: "Transport", Description: "Fuel, public transport, parking"},
		{Name: "Utilities", Description: "Electricity, water, internet, phone"},
		{Name: "Health", Description: "Medical and pharmacy"},
		{Name: "Education", Description: "Courses, books, tuition"},
		{Name: "Entertainment", Description: "Leisure and subscriptions"},
		{Name: "Other", Description: ""},
	}
}
