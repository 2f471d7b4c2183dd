package api

import (
	"errors"
	"log"
	"net/http"

	"ledger/config"
	"ledger/service"

	"github.com/gin-gonic/gin"
)

// Response 通用成功响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse 错误响应：单条 error 或多条 errors
type ErrorResponse struct {
	Error  string   `json:"error,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	SuccessWithMessage(c, "success", data)
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Created 201 响应
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, messages ...string) {
	if len(messages) > 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Errors: messages})
		return
	}
	msg := "invalid request"
	if len(messages) == 1 {
		msg = messages[0]
	}
	Error(c, http.StatusBadRequest, msg)
}

// InternalError 500 错误响应，release 模式不暴露内部错误
func InternalError(c *gin.Context, err error) {
	log.Printf("[ERROR] 请求失败 %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	Error(c, http.StatusInternalServerError, config.SafeErrorMessage(err, "internal server error"))
}

// RespondError 按错误类型映射状态码
func RespondError(c *gin.Context, err error) {
	var (
		validation *service.ValidationError
		authErr    *service.AuthError
		forbidden  *service.ForbiddenError
		notFound   *service.NotFoundError
		conflict   *service.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		BadRequest(c, validation.Messages...)
	case errors.As(err, &authErr):
		Error(c, http.StatusUnauthorized, authErr.Msg)
	case errors.As(err, &forbidden):
		Error(c, http.StatusForbidden, forbidden.Msg)
	case errors.As(err, &notFound):
		Error(c, http.StatusNotFound, notFound.Msg)
	case errors.As(err, &conflict):
		Error(c, http.StatusConflict, conflict.Msg)
	default:
		InternalError(c, err)
	}
}
