package types

// BereichRequest 创建/更新区域请求
type BereichRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// AssignBereichRequest 分配区域负责人请求
type AssignBereichRequest struct {
	BereichID        uint `json:"bereich_id"`
	BereichsleiterID uint `json:"bereichsleiter_id"`
}
