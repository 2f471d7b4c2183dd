package database

import (
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"ledger/config"
	"ledger/models"

	driver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open 建立数据库连接，完成迁移与默认数据初始化
// 返回的句柄由调用方注入各个 service
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(DSN(cfg.Database)), &gorm.Config{
		Logger: logger.Default.LogMode(LogLevel(cfg.Database.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(positiveOr(cfg.Database.MaxIdleConns, 10))
	sqlDB.SetMaxOpenConns(positiveOr(cfg.Database.MaxOpenConns, 100))
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	if err := SeedCategories(db); err != nil {
		return nil, fmt.Errorf("初始化默认类别失败: %w", err)
	}

	log.Println("数据库初始化成功")
	return db, nil
}

// DSN 由配置生成 MySQL 连接串
func DSN(cfg config.DatabaseConfig) string {
	c := driver.NewConfig()
	c.User = cfg.Username
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
	c.DBName = cfg.DBName
	c.ParseTime = true
	// 日期一律按 UTC 构造与发送，DATE 列不随主机时区偏移
	c.Loc = time.UTC
	if cfg.Charset != "" {
		c.Params = map[string]string{"charset": cfg.Charset}
	}
	return c.FormatDSN()
}

// LogLevel 将配置中的 silent/error/warn/info 转为 gorm 日志级别，未知值按 warn
func LogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Migrate 自动迁移数据库表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Expense{},
	)
}

// SeedCategories 初始化默认消费类别（仅当表为空时）
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	cats := models.DefaultCategories()
	return db.Create(&cats).Error
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
