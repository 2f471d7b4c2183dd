package service

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError 输入缺失或格式错误，可包含多条信息
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError 创建校验错误
func NewValidationError(messages ...string) error {
	return &ValidationError{Messages: messages}
}

// AuthError 凭据或令牌无效
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

// ForbiddenError 角色不足
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string { return e.Msg }

// NotFoundError 记录不存在，或不属于当前用户
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// ConflictError 用户名/邮箱重复、类别仍被引用
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// ServerError 存储层失败或其他意外错误
type ServerError struct {
	Op  string
	Err error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServerError) Unwrap() error { return e.Err }

func serverError(op string, err error) error {
	return &ServerError{Op: op, Err: err}
}

var (
	errInvalidCredentials = &AuthError{Msg: "invalid credentials"}
	errInvalidToken       = &AuthError{Msg: "invalid token"}
)

// IsValidation 等辅助函数供 api 层按类型映射状态码
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

func IsAuth(err error) bool {
	var e *AuthError
	return errors.As(err, &e)
}

func IsForbidden(err error) bool {
	var e *ForbiddenError
	return errors.As(err, &e)
}
