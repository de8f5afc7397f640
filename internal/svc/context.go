package svc

import (
	"time"

	"github.com/PetA199003/GBU-Management/internal/audit"
	"github.com/PetA199003/GBU-Management/internal/cache"
	"github.com/PetA199003/GBU-Management/internal/config"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ServiceContext 全局服务上下文
type ServiceContext struct {
	Config *config.Config
	DB     *gorm.DB
	Cache  *cache.Cache
	Audit  *audit.Recorder
}

// NewServiceContext 创建服务上下文，rdb 可以为 nil
func NewServiceContext(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *ServiceContext {
	c := cache.New(nil)
	if rdb != nil {
		c = cache.New(rdb)
	}
	return &ServiceContext{
		Config: cfg,
		DB:     db,
		Cache:  c,
		Audit:  audit.NewRecorder(db),
	}
}

// CatalogTTL 目录缓存时间
func (s *ServiceContext) CatalogTTL() time.Duration {
	return time.Duration(s.Config.GBU.CatalogCacheTTL) * time.Second
}

// DashboardTTL 仪表盘缓存时间
func (s *ServiceContext) DashboardTTL() time.Duration {
	return time.Duration(s.Config.GBU.DashboardCacheTTL) * time.Second
}
