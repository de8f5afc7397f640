// Package cmd gbu 命令行
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PetA199003/GBU-Management/common/database"
	"github.com/PetA199003/GBU-Management/common/logger"
	commonRedis "github.com/PetA199003/GBU-Management/common/redis"
	"github.com/PetA199003/GBU-Management/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Version 构建时注入
var Version = "1.0.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:          "gbu",
	Short:        "GBU-Management: Gefährdungsbeurteilungen für Veranstaltungen",
	Version:      Version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yml", "Pfad zur Konfigurationsdatei")
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd(), newVersionCmd())
}

// Execute 执行根命令
func Execute() error {
	return rootCmd.Execute()
}

// env 命令运行所需的基础设施
type env struct {
	cfg *config.Config
	db  *gorm.DB
	rdb *redis.Client
}

// setup 加载配置并初始化日志、数据库，withRedis 时按配置连接 Redis
func setup(ctx context.Context, withRedis bool) (*env, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	logger.Init(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	})

	if cfg.Database.Driver == "sqlite" && cfg.Database.Database != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Database), 0o755); err != nil {
			return nil, fmt.Errorf("创建数据目录失败: %w", err)
		}
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("初始化数据库失败: %w", err)
	}

	e := &env{cfg: cfg, db: database.GetDB()}
	if withRedis && cfg.Redis.Enabled() {
		if err := commonRedis.Init(ctx, &cfg.Redis); err != nil {
			// 缓存和会话降级为本地实现
			logger.Warn("Redis 不可用，缓存已禁用", zap.Error(err))
		} else {
			e.rdb = commonRedis.GetClient()
		}
	}
	return e, nil
}

// close 释放连接并刷新日志
func (e *env) close() {
	if e.rdb != nil {
		_ = commonRedis.Close()
	}
	if err := database.Close(); err != nil {
		logger.Warn("关闭数据库失败", zap.Error(err))
	}
	logger.Sync()
}
