package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ledger/models"

	"gorm.io/gorm"
)

// CategoryService 消费类别
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService 创建类别服务
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List 按名称排序
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	list := make([]models.Category, 0)
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, serverError("list categories", err)
	}
	return list, nil
}

// Get 按 ID 获取
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := s.db.WithContext(ctx).Take(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "category not found"}
		}
		return nil, serverError("find category", err)
	}
	return &cat, nil
}

// Create 创建后回读
func (s *CategoryService) Create(ctx context.Context, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("category name is required")
	}

	cat := models.Category{Name: name, Description: description}
	if err := s.db.WithContext(ctx).Create(&cat).Error; err != nil {
		return nil, serverError("create category", err)
	}
	return s.Get(ctx, cat.ID)
}

// Update 先确认存在，再更新并回读
func (s *CategoryService) Update(ctx context.Context, id uint, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("category name is required")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "description": description}).Error
	if err != nil {
		return nil, serverError("update category", err)
	}
	return s.Get(ctx, id)
}

// Delete 仍被消费记录引用时拒绝删除
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	var inUse int64
	if err := s.db.WithContext(ctx).Model(&models.Expense{}).Where("category_id = ?", id).Count(&inUse).Error; err != nil {
		return serverError("count category expenses", err)
	}
	if inUse > 0 {
		return &ConflictError{Msg: fmt.Sprintf("cannot delete: in use by %d expenses", inUse)}
	}

	if err := s.db.WithContext(ctx).Delete(&models.Category{}, id).Error; err != nil {
		return serverError("delete category", err)
	}
	return nil
}
