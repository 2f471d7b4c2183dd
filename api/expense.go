package api

import (
	"fmt"
	"net/http"

	"ledger/middleware"
	"ledger/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExpenseHandler 消费记录处理器
// 查询范围由 token 角色决定：管理员全部，普通用户仅本人
type ExpenseHandler struct {
	svc    *service.ExpenseService
	mailer *service.EmailService
}

// NewExpenseHandler 创建消费记录处理器
func NewExpenseHandler(svc *service.ExpenseService, mailer *service.EmailService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc, mailer: mailer}
}

// ExpenseRequest 创建/更新消费记录请求
type ExpenseRequest struct {
	Description        string           `json:"description" binding:"required,min=3,max=255" example:"Groceries"`
	Amount             *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"42.50"`
	Date               string           `json:"date" binding:"required" example:"2024-03-10"`
	CategoryID         *uint            `json:"category_id" binding:"omitempty,gt=0" example:"1"`
	IsFixed            bool             `json:"is_fixed"`
	IsInstallment      bool             `json:"is_installment"`
	TotalInstallments  *int             `json:"total_installments" binding:"omitempty,gt=0"`
	CurrentInstallment *int             `json:"current_installment" binding:"omitempty,gt=0"`
	Notes              *string          `json:"notes" binding:"omitempty,max=500"`
}

// BulkCreateResult 批量创建结果
type BulkCreateResult struct {
	InsertedRows int64 `json:"insertedRows"`
}

// toInput 转为服务层参数，user_id 只取自 token
func (r *ExpenseRequest) toInput(userID uint) (service.ExpenseInput, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return service.ExpenseInput{}, service.NewValidationError(err.Error())
	}
	return service.ExpenseInput{
		Description:        r.Description,
		Amount:             r.Amount,
		Date:               date,
		CategoryID:         r.CategoryID,
		IsFixed:            r.IsFixed,
		IsInstallment:      r.IsInstallment,
		TotalInstallments:  r.TotalInstallments,
		CurrentInstallment: r.CurrentInstallment,
		Notes:              r.Notes,
		UserID:             userID,
	}, nil
}

// List 消费记录列表
// @Summary 获取消费记录列表
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Expense} "获取成功"
// @Failure 401 {object} ErrorResponse "未授权"
// @Router /api/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), middleware.CallerScope(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, list)
}

// Get 获取消费记录
// @Summary 获取消费记录详情
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Success 200 {object} Response{data=models.Expense} "获取成功"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/expense/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	exp, err := h.svc.Get(c.Request.Context(), middleware.CallerScope(c), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, exp)
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExpenseRequest true "消费记录"
// @Success 201 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Router /api/expense [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if !bindOrAbort(c, &req) {
		return
	}
	in, err := req.toInput(middleware.GetCurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	exp, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, "expense created successfully", exp)
}

// CreateMany 批量创建
// @Summary 批量创建消费记录
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []ExpenseRequest true "消费记录数组"
// @Success 201 {object} Response{data=BulkCreateResult} "创建成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Router /api/expenses [post]
func (h *ExpenseHandler) CreateMany(c *gin.Context) {
	var reqs []ExpenseRequest
	if !bindOrAbort(c, &reqs) {
		return
	}
	if len(reqs) == 0 {
		BadRequest(c, "a non-empty list of expenses is required")
		return
	}

	userID := middleware.GetCurrentUserID(c)
	inputs := make([]service.ExpenseInput, 0, len(reqs))
	var msgs []string
	for i := range reqs {
		in, err := reqs[i].toInput(userID)
		if err != nil {
			msgs = append(msgs, fmt.Sprintf("[%d] %s", i, err.Error()))
			continue
		}
		inputs = append(inputs, in)
	}
	if len(msgs) > 0 {
		BadRequest(c, msgs...)
		return
	}

	n, err := h.svc.CreateMany(c.Request.Context(), inputs)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, "expenses created successfully", BulkCreateResult{InsertedRows: n})
}

// Update 更新消费记录
// @Summary 更新消费记录
// @Tags 消费记录
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Param request body ExpenseRequest true "消费记录"
// @Success 200 {object} Response{data=models.Expense} "更新成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/expense/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ExpenseRequest
	if !bindOrAbort(c, &req) {
		return
	}
	in, err := req.toInput(middleware.GetCurrentUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	exp, err := h.svc.Update(c.Request.Context(), middleware.CallerScope(c), id, in)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "expense updated successfully", exp)
}

// Delete 删除消费记录
// @Summary 删除消费记录
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/expense/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.CallerScope(c), id); err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "expense deleted successfully", nil)
}

// ListByMonth 按月查询
// @Summary 按月获取消费记录
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Param month path int true "月份 1-12"
// @Param year path int true "年份"
// @Success 200 {object} Response{data=[]models.Expense} "获取成功"
// @Failure 400 {object} ErrorResponse "月份或年份无效"
// @Router /api/expenses/{month}/{year} [get]
func (h *ExpenseHandler) ListByMonth(c *gin.Context) {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}
	list, err := h.svc.ListByMonth(c.Request.Context(), middleware.CallerScope(c), month, year)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, list)
}

// MonthlySummary 月度汇总
// @Summary 月度汇总
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param month path int true "月份 1-12"
// @Param year path int true "年份"
// @Success 200 {object} Response{data=service.MonthlySummary} "获取成功"
// @Router /api/expenses/summary/{month}/{year} [get]
func (h *ExpenseHandler) MonthlySummary(c *gin.Context) {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}
	summary, err := h.svc.MonthlySummary(c.Request.Context(), middleware.CallerScope(c), month, year)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, summary)
}

// CategorySummary 按类别汇总
// @Summary 按类别汇总
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param month path int true "月份 1-12"
// @Param year path int true "年份"
// @Success 200 {object} Response{data=[]service.CategoryTotal} "获取成功"
// @Router /api/expenses/categories/{month}/{year} [get]
func (h *ExpenseHandler) CategorySummary(c *gin.Context) {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}
	rows, err := h.svc.CategorySummary(c.Request.Context(), middleware.CallerScope(c), month, year)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, rows)
}

// ListFixed 固定支出
// @Summary 固定支出列表
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Expense} "获取成功"
// @Router /api/expenses/fixed/all [get]
func (h *ExpenseHandler) ListFixed(c *gin.Context) {
	list, err := h.svc.ListFixed(c.Request.Context(), middleware.CallerScope(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, list)
}

// ListInstallments 分期支出
// @Summary 分期支出列表
// @Tags 消费记录
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Expense} "获取成功"
// @Router /api/expenses/installment/all [get]
func (h *ExpenseHandler) ListInstallments(c *gin.Context) {
	list, err := h.svc.ListInstallments(c.Request.Context(), middleware.CallerScope(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, list)
}

// MonthlyReport 月度报表
// @Summary 月度报表
// @Description 汇总、类别汇总与按固定/分期/可变分组的明细
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param month path int true "月份 1-12"
// @Param year path int true "年份"
// @Success 200 {object} Response{data=service.MonthlyReport} "获取成功"
// @Router /api/expenses/report/{month}/{year} [get]
func (h *ExpenseHandler) MonthlyReport(c *gin.Context) {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}
	report, err := h.svc.MonthlyReport(c.Request.Context(), middleware.CallerScope(c), month, year)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, report)
}

// ExportReport 导出月度报表为 xlsx
// @Summary 导出月度报表
// @Tags 统计
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param month path int true "月份 1-12"
// @Param year path int true "年份"
// @Success 200 {file} file "xlsx 文件"
// @Router /api/expenses/report/{month}/{year}/export [get]
func (h *ExpenseHandler) ExportReport(c *gin.Context) {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}
	report, err := h.svc.MonthlyReport(c.Request.Context(), middleware.CallerScope(c), month, year)
	if err != nil {
		RespondError(c, err)
		return
	}
	buf, err := service.RenderReportWorkbook(report)
	if err != nil {
		InternalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", service.ReportFileName(month, year)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// EmailReport 将月度报表发送到当前用户邮箱
// @Summary 邮件发送月度报表
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param month path int true "月份 1-12"
// @Param year path int true "年份"
// @Success 200 {object} Response "发送成功"
// @Failure 400 {object} ErrorResponse "邮件服务未启用"
// @Router /api/expenses/report/{month}/{year}/email [post]
func (h *ExpenseHandler) EmailReport(c *gin.Context) {
	month, year, ok := parseMonthYear(c)
	if !ok {
		return
	}
	if h.mailer == nil || !h.mailer.Enabled() {
		BadRequest(c, "email delivery is not enabled")
		return
	}

	report, err := h.svc.MonthlyReport(c.Request.Context(), middleware.CallerScope(c), month, year)
	if err != nil {
		RespondError(c, err)
		return
	}
	buf, err := service.RenderReportWorkbook(report)
	if err != nil {
		InternalError(c, err)
		return
	}

	to := middleware.GetCurrentEmail(c)
	if err := h.mailer.SendMonthlyReport(to, middleware.GetCurrentUsername(c), report, buf.Bytes()); err != nil {
		RespondError(c, err)
		return
	}
	SuccessWithMessage(c, "report sent to "+to, nil)
}
