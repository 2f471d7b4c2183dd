package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"ledger/auth"
	"ledger/config"
	"ledger/database"
	"ledger/router"
	"ledger/service"
)

// @title Ledger 记账 API
// @version 1.0
// @description 个人/家庭支出记账 API：用户认证、消费类别、消费记录与月度报表
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 3000 或 :3000")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("记账系统 ledger v1.0.0")
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	// 打印配置信息
	config.PrintConfig()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}

	// 可选的初始管理员
	if admin := cfg.Auth.BootstrapAdmin; admin.Username != "" {
		creds := service.NewCredentialService(db, auth.NewTokenManager(cfg.JWT))
		created, err := creds.EnsureAdmin(context.Background(), admin.Username, admin.Email, admin.Password)
		if err != nil {
			log.Fatalf("创建初始管理员失败: %v", err)
		}
		if created {
			log.Printf("已创建初始管理员 %q", admin.Username)
		}
	}

	r := router.SetupRouter(cfg, db)

	log.Printf("==========================================")
	log.Printf("  记账系统已启动")
	log.Printf("==========================================")
	log.Printf("  API接口:  http://localhost%s/api/", cfg.Server.Port)
	log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
	log.Printf("==========================================")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
