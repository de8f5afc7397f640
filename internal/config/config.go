package config

import (
	commonConfig "github.com/PetA199003/GBU-Management/common/config"
)

// Config 应用配置
type Config struct {
	commonConfig.Config `yaml:",inline"`
	GBU                 GBUConfig       `yaml:"gbu"`
	Scheduler           SchedulerConfig `yaml:"scheduler" envPrefix:"SCHEDULER_"`
}

// GBUConfig 业务配置
type GBUConfig struct {
	AllowOrigins      []string `yaml:"allow_origins" env:"ALLOW_ORIGINS"`
	MaxUploadMB       int      `yaml:"max_upload_mb" env:"MAX_UPLOAD_MB"`
	CatalogCacheTTL   int      `yaml:"catalog_cache_ttl" env:"CATALOG_CACHE_TTL"`     // 秒
	DashboardCacheTTL int      `yaml:"dashboard_cache_ttl" env:"DASHBOARD_CACHE_TTL"` // 秒
	SeedOnStart       bool     `yaml:"seed_on_start" env:"SEED_ON_START"`
}

// SchedulerConfig 定时任务配置
type SchedulerConfig struct {
	Enabled            bool   `yaml:"enabled" env:"ENABLED"`
	StatusCron         string `yaml:"status_cron" env:"STATUS_CRON"`
	AuditCron          string `yaml:"audit_cron" env:"AUDIT_CRON"`
	AuditRetentionDays int    `yaml:"audit_retention_days" env:"AUDIT_RETENTION_DAYS"`
}

// Default 默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.App = commonConfig.AppConfig{Name: "GBU-Management", Version: "1.0.0", Env: "dev"}
	cfg.Server = commonConfig.ServerConfig{Host: "0.0.0.0", Port: 5000, ReadTimeout: 30, WriteTimeout: 60, BodyLimit: 16}
	cfg.Database = commonConfig.DatabaseConfig{Driver: "sqlite", Database: "gbu.db", LogLevel: "warn", MaxIdleConns: 10, MaxOpenConns: 50, ConnMaxLifetime: 3600}
	cfg.Log = commonConfig.LogConfig{Level: "info", Format: "console", Output: "stdout", MaxSize: 100, MaxBackups: 7, MaxAge: 30}
	cfg.SaToken = commonConfig.SaTokenConfig{TokenName: "satoken", Timeout: 86400, ActiveTimeout: -1, IsConcurrent: true, MaxLoginCount: 10}
	cfg.GBU = GBUConfig{MaxUploadMB: 16, CatalogCacheTTL: 600, DashboardCacheTTL: 60, SeedOnStart: true}
	cfg.Scheduler = SchedulerConfig{Enabled: true, StatusCron: "5 0 * * *", AuditCron: "30 3 * * *", AuditRetentionDays: 365}
	return cfg
}

// LoadConfig 加载配置文件，path 为空时只读取默认值和环境变量
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if err := commonConfig.Load(path, cfg); err != nil {
		return nil, err
	}
	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	commonConfig.SetConfig(&cfg.Config)
	return cfg, nil
}
