package router

import (
	"net/http"
	"strings"

	"ledger/api"
	"ledger/auth"
	"ledger/config"
	_ "ledger/docs"
	"ledger/middleware"
	"ledger/models"
	"ledger/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// uploadsPrefix 头像静态文件的访问前缀
const uploadsPrefix = "/uploads"

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware(cfg.CORS))

	tokens := auth.NewTokenManager(cfg.JWT)
	creds := service.NewCredentialService(db, tokens)
	images := service.NewImageStore(cfg.Upload, uploadsPrefix)

	authHandler := api.NewAuthHandler(creds, images)
	categoryHandler := api.NewCategoryHandler(service.NewCategoryService(db))
	expenseHandler := api.NewExpenseHandler(service.NewExpenseService(db), service.NewEmailService(&cfg.Email))

	// 上传的头像
	r.Static(uploadsPrefix, images.Dir())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	g := r.Group("/api")
	{
		// 类别接口不校验 token
		g.GET("/categories", categoryHandler.List)
		g.POST("/categories", categoryHandler.Create)
		g.GET("/category/:id", categoryHandler.Get)
		g.PUT("/category/:id", categoryHandler.Update)
		g.DELETE("/category/:id", categoryHandler.Delete)

		g.POST("/auth/register", authHandler.Register)
		g.POST("/auth/login",
			middleware.LoginRateLimit(cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow()),
			authHandler.Login)

		// 需要 JWT 认证的路由
		authorized := g.Group("")
		authorized.Use(middleware.JWTAuth(creds))
		{
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/change-password", authHandler.ChangePassword)
			authorized.PUT("/auth/profile/image", authHandler.UpdateProfileImage)
			authorized.GET("/auth/users", middleware.RequireRole(models.RoleAdmin), authHandler.ListUsers)

			authorized.GET("/expenses", expenseHandler.List)
			authorized.POST("/expenses", expenseHandler.CreateMany)
			authorized.POST("/expense", expenseHandler.Create)
			authorized.GET("/expense/:id", expenseHandler.Get)
			authorized.PUT("/expense/:id", expenseHandler.Update)
			authorized.DELETE("/expense/:id", expenseHandler.Delete)

			expenses := authorized.Group("/expenses")
			{
				expenses.GET("/:month/:year", expenseHandler.ListByMonth)
				expenses.GET("/summary/:month/:year", expenseHandler.MonthlySummary)
				expenses.GET("/categories/:month/:year", expenseHandler.CategorySummary)
				expenses.GET("/fixed/all", expenseHandler.ListFixed)
				expenses.GET("/installment/all", expenseHandler.ListInstallments)
				expenses.GET("/report/:month/:year", expenseHandler.MonthlyReport)
				expenses.GET("/report/:month/:year/export", expenseHandler.ExportReport)
				expenses.POST("/report/:month/:year/email", expenseHandler.EmailReport)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件，允许的来源/方法/头来自配置
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	origins := splitList(cfg.AllowOrigins)
	allowAll := len(origins) == 0
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}
	methods := strings.Join(splitList(cfg.AllowMethods), ", ")
	headers := strings.Join(splitList(cfg.AllowHeaders), ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		}
		if methods != "" {
			c.Writer.Header().Set("Access-Control-Allow-Methods", methods)
		}
		if headers != "" {
			c.Writer.Header().Set("Access-Control-Allow-Headers", headers)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
