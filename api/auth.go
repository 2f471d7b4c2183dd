package api

import (
	"errors"
	"log"
	"net/http"

	"ledger/middleware"
	"ledger/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	creds  *service.CredentialService
	images *service.ImageStore
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(creds *service.CredentialService, images *service.ImageStore) *AuthHandler {
	return &AuthHandler{creds: creds, images: images}
}

// RegisterRequest 注册请求，支持 JSON 或 multipart（可带 profileImage 文件）
type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required,alphanum,min=3,max=30" example:"alice"`
	Email    string `json:"email" form:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" form:"password" binding:"required,min=6" example:"secret123"`
	Role     string `json:"role" form:"role" binding:"omitempty,oneof=admin user" example:"user"`
}

// LoginRequest 登录请求，username 可为用户名或邮箱
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// Register 用户注册
// @Summary 用户注册
// @Description 创建新用户，可同时上传头像（multipart 字段 profileImage）
// @Tags 认证
// @Accept json,mpfd
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 201 {object} Response{data=models.User} "注册成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 409 {object} ErrorResponse "用户名或邮箱已存在"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindOrAbort(c, &req) {
		return
	}

	in := service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}

	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		fh, err := c.FormFile("profileImage")
		switch {
		case err == nil:
			path, err := h.images.Save(fh)
			if err != nil {
				RespondError(c, err)
				return
			}
			in.ProfileImage = &path
		case !errors.Is(err, http.ErrMissingFile):
			BadRequest(c, "invalid multipart form")
			return
		}
	}

	user, err := h.creds.Register(c.Request.Context(), in)
	if err != nil {
		// 注册失败时清理已保存的头像
		if in.ProfileImage != nil {
			if rmErr := h.images.Remove(*in.ProfileImage); rmErr != nil {
				log.Printf("[WARN] 清理头像失败 %s: %v", *in.ProfileImage, rmErr)
			}
		}
		RespondError(c, err)
		return
	}
	Created(c, "user registered successfully", user)
}

// Login 用户登录
// @Summary 用户登录
// @Description 使用用户名或邮箱登录，返回 token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=service.LoginResult} "登录成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 401 {object} ErrorResponse "用户名或密码错误"
// @Failure 429 {object} ErrorResponse "尝试过于频繁"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindOrAbort(c, &req) {
		return
	}

	result, err := h.creds.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "login successful", result)
}

// GetProfile 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "获取成功"
// @Failure 401 {object} ErrorResponse "未授权"
// @Failure 404 {object} ErrorResponse "用户不存在"
// @Router /api/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.creds.GetProfile(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, user)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "密码信息"
// @Success 200 {object} Response "修改成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 401 {object} ErrorResponse "当前密码错误"
// @Router /api/auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindOrAbort(c, &req) {
		return
	}

	err := h.creds.ChangePassword(c.Request.Context(), middleware.GetCurrentUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "password updated successfully", nil)
}

// UpdateProfileImage 更新头像
// @Summary 更新头像
// @Tags 认证
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param profileImage formData file true "头像图片"
// @Success 200 {object} Response{data=models.User} "更新成功"
// @Failure 400 {object} ErrorResponse "未上传图片或格式不支持"
// @Router /api/auth/profile/image [put]
func (h *AuthHandler) UpdateProfileImage(c *gin.Context) {
	fh, err := c.FormFile("profileImage")
	if err != nil {
		BadRequest(c, "no image uploaded")
		return
	}

	path, err := h.images.Save(fh)
	if err != nil {
		RespondError(c, err)
		return
	}

	user, err := h.creds.UpdateProfileImage(c.Request.Context(), middleware.GetCurrentUserID(c), path)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "profile image updated successfully", user)
}

// ListUsers 用户列表（管理员）
// @Summary 用户列表
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.User} "获取成功"
// @Failure 403 {object} ErrorResponse "权限不足"
// @Router /api/auth/users [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.creds.ListUsers(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, users)
}
