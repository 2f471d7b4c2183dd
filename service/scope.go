package service

import (
	"gorm.io/gorm"
)

// Scope 授权范围：管理员不限，普通用户仅本人数据
// 范围只来源于调用者的 token，不接受客户端传入的 user_id
type Scope struct {
	restricted bool
	userID     uint
}

// Unrestricted 全部记录
func Unrestricted() Scope {
	return Scope{}
}

// OwnedBy 仅 userID 的记录
func OwnedBy(userID uint) Scope {
	return Scope{restricted: true, userID: userID}
}

// Restricted 是否限定到单个用户
func (s Scope) Restricted() bool {
	return s.restricted
}

// UserID 受限时的用户 ID
func (s Scope) UserID() uint {
	return s.userID
}

// owned 以查询条件形式注入范围，column 为带别名的 user_id 列
func (s Scope) owned(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !s.Restricted() {
			return db
		}
		return db.Where(column+" = ?", s.userID)
	}
}
