package logic

import (
	"context"
	"time"

	"github.com/PetA199003/GBU-Management/common/types"
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/svc"
	apiTypes "github.com/PetA199003/GBU-Management/internal/types"

	"gorm.io/gorm"
)

// AuditLogic 审计日志查询与清理
type AuditLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// NewAuditLogic 创建审计日志逻辑
func NewAuditLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AuditLogic {
	return &AuditLogic{ctx: ctx, svcCtx: svcCtx}
}

func (l *AuditLogic) db() *gorm.DB {
	return l.svcCtx.DB.WithContext(l.ctx)
}

// List 分页查询审计日志，最新的在前
func (l *AuditLogic) List(req *apiTypes.AuditListRequest) ([]model.AuditLog, int64, error) {
	req.Normalize()
	query := l.db().Model(&model.AuditLog{})
	if req.EntityType != "" {
		query = query.Where("entity_type = ?", req.EntityType)
	}
	if req.UserID > 0 {
		query = query.Where("user_id = ?", req.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	logs := make([]model.AuditLog, 0)
	err := query.Order("id DESC").Offset(req.Offset()).Limit(req.PageSize).Find(&logs).Error
	return logs, total, err
}

// Purge 删除早于 before 的审计日志
func (l *AuditLogic) Purge(before time.Time) (int64, error) {
	res := l.db().Where("created_at < ?", types.NewDateTime(before)).Delete(&model.AuditLog{})
	return res.RowsAffected, res.Error
}
