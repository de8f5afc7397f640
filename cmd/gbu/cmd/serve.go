package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/PetA199003/GBU-Management/common/logger"
	"github.com/PetA199003/GBU-Management/internal/auth"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/router"
	"github.com/PetA199003/GBU-Management/internal/scheduler"
	"github.com/PetA199003/GBU-Management/internal/seed"
	"github.com/PetA199003/GBU-Management/internal/svc"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "HTTP-Server starten",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	e, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer e.close()
	cfg := e.cfg

	if err := model.Migrate(e.db); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	if cfg.GBU.SeedOnStart {
		empty, err := seed.IsEmpty(ctx, e.db)
		if err != nil {
			return err
		}
		if empty {
			if _, err := seed.Run(ctx, e.db); err != nil {
				return fmt.Errorf("写入默认数据失败: %w", err)
			}
		}
	}

	if err := auth.InitSaToken(&cfg.SaToken, &cfg.Redis); err != nil {
		return fmt.Errorf("初始化SaToken失败: %w", err)
	}

	svcCtx := svc.NewServiceContext(cfg, e.db, e.rdb)
	defer svcCtx.Audit.Flush()

	if cfg.Scheduler.Enabled {
		sch, err := scheduler.New(svcCtx, e.rdb)
		if err != nil {
			return fmt.Errorf("初始化定时任务失败: %w", err)
		}
		sch.Start()
		defer func() {
			if err := sch.Shutdown(); err != nil {
				logger.Warn("停止定时任务失败", zap.Error(err))
			}
		}()
	}

	app := router.NewApp(svcCtx)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	listenErr := make(chan error, 1)
	go func() {
		logger.Info("服务器启动", zap.String("addr", addr), zap.String("version", Version))
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("服务器启动失败: %w", err)
	case <-ctx.Done():
	}

	logger.Info("正在关闭服务器...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("服务器关闭失败", zap.Error(err))
	}
	logger.Info("服务器已关闭")
	return nil
}
