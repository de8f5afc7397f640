package auth

import (
	"fmt"

	"github.com/PetA199003/GBU-Management/common/config"
	"github.com/PetA199003/GBU-Management/common/logger"

	"github.com/click33/sa-token-go/core"
	"github.com/click33/sa-token-go/storage/memory"
	satokenRedis "github.com/click33/sa-token-go/storage/redis"
	"github.com/click33/sa-token-go/stputil"
	"go.uber.org/zap"
)

var tokenName = "satoken"

// InitSaToken 初始化SaToken，Redis 可用时共享会话，否则使用内存存储
func InitSaToken(tokenCfg *config.SaTokenConfig, redisCfg *config.RedisConfig) error {
	var storage core.Storage

	if redisCfg.Enabled() {
		redisURL := fmt.Sprintf("redis://%s/%d", redisCfg.Addr(), redisCfg.DB)
		if redisCfg.Password != "" {
			redisURL = fmt.Sprintf("redis://:%s@%s/%d", redisCfg.Password, redisCfg.Addr(), redisCfg.DB)
		}
		s, err := satokenRedis.NewStorage(redisURL)
		if err != nil {
			logger.Warn("SaToken Redis存储初始化失败，降级使用内存存储", zap.Error(err))
			storage = memory.NewStorage()
		} else {
			storage = s
		}
	} else {
		logger.Warn("SaToken 使用内存存储，服务重启后会话失效")
		storage = memory.NewStorage()
	}

	if tokenCfg.TokenName != "" {
		tokenName = tokenCfg.TokenName
	}

	manager := core.NewBuilder().
		Storage(storage).
		TokenName(tokenName).
		Timeout(tokenCfg.Timeout).
		ActiveTimeout(tokenCfg.ActiveTimeout).
		IsConcurrent(tokenCfg.IsConcurrent).
		IsShare(tokenCfg.IsShare).
		MaxLoginCount(tokenCfg.MaxLoginCount).
		IsLog(tokenCfg.IsLog).
		Build()

	stputil.SetManager(manager)
	return nil
}

// TokenName 会话 token 名称
func TokenName() string {
	return tokenName
}

// Login 登录，返回 token
func Login(userID uint) (string, error) {
	return stputil.Login(userID)
}

// LogoutByToken 根据Token登出
func LogoutByToken(token string) error {
	return stputil.LogoutByToken(token)
}

// IsLogin 判断是否登录
func IsLogin(token string) bool {
	return stputil.IsLogin(token)
}

// GetLoginID 获取登录ID
func GetLoginID(token string) (string, error) {
	return stputil.GetLoginID(token)
}

// KickOut 踢人下线
func KickOut(userID uint) error {
	return stputil.Kickout(userID)
}
