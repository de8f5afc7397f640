package types

// ParticipantRequest 创建/更新参与者请求
type ParticipantRequest struct {
	ProjectID uint    `json:"project_id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Position  *string `json:"position"`
	Company   *string `json:"company"`
}

// SignRequest 数字签名请求
type SignRequest struct {
	SignatureData string `json:"signature_data"`
}

// ImportResult 导入结果
type ImportResult struct {
	Message       string   `json:"message"`
	ImportedCount int      `json:"imported_count"`
	Errors        []string `json:"errors"`
}

// SignatureStats 签名统计
type SignatureStats struct {
	Total   int64 `json:"total"`
	Digital int64 `json:"digital"`
	Analog  int64 `json:"analog"`
	Pending int64 `json:"pending"`
}
