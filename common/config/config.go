package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "GBU_"

// Config 全局配置结构
type Config struct {
	App      AppConfig      `yaml:"app" envPrefix:"APP_"`
	Server   ServerConfig   `yaml:"server" envPrefix:"SERVER_"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DATABASE_"`
	Redis    RedisConfig    `yaml:"redis" envPrefix:"REDIS_"`
	Log      LogConfig      `yaml:"log" envPrefix:"LOG_"`
	SaToken  SaTokenConfig  `yaml:"sa_token" envPrefix:"SA_TOKEN_"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name    string `yaml:"name" env:"NAME"`
	Version string `yaml:"version" env:"VERSION"`
	Env     string `yaml:"env" env:"ENV"` // dev, test, prod
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port         int    `yaml:"port" env:"PORT"`
	Host         string `yaml:"host" env:"HOST"`
	ReadTimeout  int    `yaml:"read_timeout" env:"READ_TIMEOUT"`   // 秒
	WriteTimeout int    `yaml:"write_timeout" env:"WRITE_TIMEOUT"` // 秒
	BodyLimit    int    `yaml:"body_limit" env:"BODY_LIMIT"`       // MB
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string   `yaml:"driver" env:"DRIVER"` // mysql, postgres, sqlite
	Host            string   `yaml:"host" env:"HOST"`
	Port            int      `yaml:"port" env:"PORT"`
	Username        string   `yaml:"username" env:"USERNAME"`
	Password        string   `yaml:"password" env:"PASSWORD"`
	Database        string   `yaml:"database" env:"NAME"` // sqlite 时为文件路径
	Charset         string   `yaml:"charset" env:"CHARSET"`
	Replicas        []string `yaml:"replicas" env:"REPLICAS"` // 只读副本 DSN
	LogLevel        string   `yaml:"log_level" env:"LOG_LEVEL"`
	MaxIdleConns    int      `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	MaxOpenConns    int      `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	ConnMaxLifetime int      `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
}

// Enabled Redis 是否已配置
func (c RedisConfig) Enabled() bool {
	return c.Host != "" && c.Port > 0
}

// Addr Redis 地址
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" env:"LEVEL"`   // debug, info, warn, error
	Format     string `yaml:"format" env:"FORMAT"` // json, console
	Output     string `yaml:"output" env:"OUTPUT"` // stdout, file, both
	FilePath   string `yaml:"file_path" env:"FILE_PATH"`
	MaxSize    int    `yaml:"max_size" env:"MAX_SIZE"` // MB
	MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS"`
	MaxAge     int    `yaml:"max_age" env:"MAX_AGE"` // days
}

// SaTokenConfig SaToken配置
type SaTokenConfig struct {
	TokenName     string `yaml:"token_name" env:"TOKEN_NAME"`           // token名称
	Timeout       int64  `yaml:"timeout" env:"TIMEOUT"`                 // token有效期(秒)
	ActiveTimeout int64  `yaml:"active_timeout" env:"ACTIVE_TIMEOUT"`   // token活跃检测超时时间(秒)
	IsConcurrent  bool   `yaml:"is_concurrent" env:"IS_CONCURRENT"`     // 是否允许同一账号并发登录
	IsShare       bool   `yaml:"is_share" env:"IS_SHARE"`               // 是否共用token
	MaxLoginCount int    `yaml:"max_login_count" env:"MAX_LOGIN_COUNT"` // 同一账号最大登录数量
	IsLog         bool   `yaml:"is_log" env:"IS_LOG"`
}

var (
	globalConfig *Config
	mu           sync.RWMutex
)

// Load 读取 YAML 文件到 out，再用环境变量覆盖
func Load(path string, out any) error {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("读取配置文件失败: %w", err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("解析配置文件失败: %w", err)
		}
	}
	return ParseEnv(out)
}

// ParseEnv 用 GBU_ 前缀的环境变量覆盖配置
func ParseEnv(out any) error {
	if err := env.ParseWithOptions(out, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("解析环境变量失败: %w", err)
	}
	return nil
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return globalConfig
}

// SetConfig 设置全局配置
func SetConfig(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = cfg
}
