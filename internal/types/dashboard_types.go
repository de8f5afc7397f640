package types

import "github.com/PetA199003/GBU-Management/internal/model"

// AuditListRequest 审计日志查询
type AuditListRequest struct {
	PageRequest
	EntityType string `query:"entity_type"`
	UserID     uint   `query:"user_id"`
}

// Dashboard 仪表盘统计
type Dashboard struct {
	TotalProjects    int64            `json:"total_projects"`
	ProjectsByStatus map[string]int64 `json:"projects_by_status"`
	ActiveProjects   int64            `json:"active_projects"`
	PlanningProjects int64            `json:"planning_projects"`
	Participants     SignatureStats   `json:"participants"`
	HazardsByBand    map[string]int64 `json:"hazards_by_band"`
	Upcoming         []model.Project  `json:"upcoming"`
}
