package models

import (
	"time"
)

const (
	// RoleAdmin 管理员：可访问全部数据
	RoleAdmin = "admin"
	// RoleUser 普通用户：仅可访问本人数据
	RoleUser = "user"
)

// User 用户模型
// username/email 只建普通索引，唯一性由注册时的存在性检查保证
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:30;not null;index"`
	Email        string    `json:"email" gorm:"size:100;not null;index"`
	Password     string    `json:"-" gorm:"size:255;not null"`
	ProfileImage *string   `json:"profile_image" gorm:"size:255"`
	Role         string    `json:"role" gorm:"size:10;not null;default:user"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}

// ValidRole 角色是否合法
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
