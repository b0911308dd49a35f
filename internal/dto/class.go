package dto

// ── 班级模块 DTO ──

// CreateClassRequest 创建班级请求
type CreateClassRequest struct {
	ClassName string `json:"class_name" binding:"required"`
}

// CreateClassResponse 创建班级响应
type CreateClassResponse struct {
	Message string `json:"message"`
	ClassID uint   `json:"class_id"`
}

// ImportStudentsResponse 名单导入响应
type ImportStudentsResponse struct {
	Message    string `json:"message"`
	TotalUsers int    `json:"total_users"`
}
