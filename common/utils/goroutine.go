package utils

import (
	"fmt"
	"runtime/debug"

	"github.com/PetA199003/GBU-Management/common/logger"

	"go.uber.org/zap"
)

// SafeGo 安全地启动一个 goroutine，自动捕获 panic 并记录日志
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("goroutine panic recovered",
					zap.String("name", name),
					zap.String("panic", fmt.Sprint(r)),
					zap.ByteString("stack", debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
