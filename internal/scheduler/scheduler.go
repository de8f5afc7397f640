// Package scheduler 定时任务：项目状态流转和审计日志清理
package scheduler

import (
	"context"
	"time"

	"github.com/PetA199003/GBU-Management/common/logger"
	"github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/internal/logic"
	"github.com/PetA199003/GBU-Management/internal/svc"

	redislock "github.com/go-co-op/gocron-redis-lock/v2"
	"github.com/go-co-op/gocron/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 任务名称
const (
	JobProjectStatus = "project-status"
	JobAuditPurge    = "audit-purge"
)

// Scheduler 定时任务调度器
type Scheduler struct {
	svcCtx *svc.ServiceContext
	cron   gocron.Scheduler
}

// New 创建调度器并注册任务，rdb 不为空时多实例通过 Redis 锁互斥
func New(svcCtx *svc.ServiceContext, rdb *redis.Client) (*Scheduler, error) {
	opts := []gocron.SchedulerOption{gocron.WithLocation(time.Local)}
	if rdb != nil {
		locker, err := redislock.NewRedisLocker(rdb)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gocron.WithDistributedLocker(locker))
	}
	cron, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, err
	}
	s := &Scheduler{svcCtx: svcCtx, cron: cron}

	cfg := svcCtx.Config.Scheduler
	if err := s.add(JobProjectStatus, cfg.StatusCron, s.advanceStatuses); err != nil {
		return nil, err
	}
	if cfg.AuditRetentionDays > 0 {
		if err := s.add(JobAuditPurge, cfg.AuditCron, s.purgeAudit); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Scheduler) add(name, expr string, run func(ctx context.Context, now time.Time)) error {
	_, err := s.cron.NewJob(
		gocron.CronJob(expr, false),
		gocron.NewTask(func() { run(context.Background(), time.Now()) }),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

// Start 启动调度
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("定时任务已启动", zap.Int("jobs", len(s.cron.Jobs())))
}

// Shutdown 停止调度并等待运行中的任务
func (s *Scheduler) Shutdown() error {
	return s.cron.Shutdown()
}

// JobNames 已注册的任务
func (s *Scheduler) JobNames() []string {
	jobs := s.cron.Jobs()
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name())
	}
	return names
}

func (s *Scheduler) advanceStatuses(ctx context.Context, now time.Time) {
	activated, completed, err := logic.NewProjectLogic(ctx, s.svcCtx).AdvanceStatuses(types.DateOf(now))
	if err != nil {
		logger.Error("项目状态更新失败", zap.Error(err))
		return
	}
	if activated+completed > 0 {
		logger.Info("项目状态已更新", zap.Int64("activated", activated), zap.Int64("completed", completed))
	}
}

func (s *Scheduler) purgeAudit(ctx context.Context, now time.Time) {
	days := s.svcCtx.Config.Scheduler.AuditRetentionDays
	if days <= 0 {
		return
	}
	n, err := logic.NewAuditLogic(ctx, s.svcCtx).Purge(now.AddDate(0, 0, -days))
	if err != nil {
		logger.Error("审计日志清理失败", zap.Error(err))
		return
	}
	logger.Info("审计日志已清理", zap.Int64("deleted", n), zap.Int("retention_days", days))
}
