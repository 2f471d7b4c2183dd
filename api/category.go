package api

import (
	"ledger/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 消费类别，路由不要求登录
type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=50" example:"Food"`
	Description string `json:"description" binding:"max=255" example:"Groceries and restaurants"`
}

// List 列出所有类别
// @Summary 获取消费类别列表
// @Tags 消费类别
// @Produce json
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, list)
}

// Get 获取类别
// @Summary 获取消费类别
// @Tags 消费类别
// @Produce json
// @Param id path int true "类别ID"
// @Success 200 {object} Response{data=models.Category} "获取成功"
// @Failure 404 {object} ErrorResponse "类别不存在"
// @Router /api/category/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cat, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, cat)
}

// Create 创建类别
// @Summary 创建消费类别
// @Tags 消费类别
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "类别信息"
// @Success 201 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Router /api/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if !bindOrAbort(c, &req) {
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, "category created successfully", cat)
}

// Update 更新类别
// @Summary 更新消费类别
// @Tags 消费类别
// @Accept json
// @Produce json
// @Param id path int true "类别ID"
// @Param request body CategoryRequest true "类别信息"
// @Success 200 {object} Response{data=models.Category} "更新成功"
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 404 {object} ErrorResponse "类别不存在"
// @Router /api/category/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if !bindOrAbort(c, &req) {
		return
	}
	cat, err := h.svc.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "category updated successfully", cat)
}

// Delete 删除类别，仍被消费记录引用时返回 409
// @Summary 删除消费类别
// @Tags 消费类别
// @Produce json
// @Param id path int true "类别ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} ErrorResponse "类别不存在"
// @Failure 409 {object} ErrorResponse "类别仍被使用"
// @Router /api/category/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "category deleted successfully", nil)
}
