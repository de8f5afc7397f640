// Package audit 异步写入审计日志
package audit

import (
	"context"
	"sync"

	"github.com/PetA199003/GBU-Management/common/logger"
	"github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/common/utils"
	"github.com/PetA199003/GBU-Management/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 审计动作
const (
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionChangePassword = "change_password"
	ActionCreate         = "create"
	ActionUpdate         = "update"
	ActionDelete         = "delete"
	ActionAssign         = "assign"
	ActionUnassign       = "unassign"
	ActionImport         = "import"
	ActionSign           = "sign"
	ActionGenerate       = "generate"
	ActionCopyTemplate   = "copy_template"
	ActionStatusChange   = "status_change"
)

// 审计对象类型
const (
	EntityUser              = "user"
	EntityProject           = "project"
	EntityProjectAssignment = "project_assignment"
	EntityProjectHazard     = "project_hazard"
	EntityBereich           = "bereich"
	EntityBereichAssignment = "bereich_assignment"
	EntityTemplate          = "gbu_template"
	EntityGefaehrdung       = "gefaehrdung"
	EntityRiskAssessment    = "risk_assessment"
	EntityHazard            = "hazard"
	EntityMeasure           = "control_measure"
	EntityCriteria          = "criteria_category"
	EntityParticipant       = "participant"
	EntityUnterweisung      = "unterweisung"
)

// Recorder 审计日志记录器
type Recorder struct {
	db      *gorm.DB
	pending sync.WaitGroup
}

// NewRecorder 创建记录器
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Record 异步保存一条审计日志，nil 记录器忽略
func (r *Recorder) Record(entry model.AuditLog) {
	if r == nil {
		return
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = types.Now()
	}
	r.pending.Add(1)
	utils.SafeGo("audit", func() {
		defer r.pending.Done()
		if err := r.db.Create(&entry).Error; err != nil {
			logger.Warn("保存审计日志失败", zap.String("action", entry.Action), zap.Error(err))
		}
	})
}

// Log 记录一次操作，IP 取自 ctx
func (r *Recorder) Log(ctx context.Context, userID uint, action, entityType string, entityID uint, details string) {
	r.Record(model.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		IPAddress:  ClientIP(ctx),
	})
}

type clientIPKey struct{}

// WithClientIP 在 ctx 中保存客户端 IP
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP 读取 ctx 中的客户端 IP
func ClientIP(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// Flush 等待未完成的写入
func (r *Recorder) Flush() {
	if r == nil {
		return
	}
	r.pending.Wait()
}
