package types

// PageRequest 分页请求
type PageRequest struct {
	Page     int `query:"page" json:"page"`
	PageSize int `query:"pageSize" json:"pageSize"`
}

// Normalize 补全默认值并限制每页数量
func (r *PageRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 20
	}
	if r.PageSize > 200 {
		r.PageSize = 200
	}
}

// Offset 偏移量
func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// IDsRequest ID 列表请求
type IDsRequest struct {
	IDs []uint `json:"risk_assessment_ids"`
}
