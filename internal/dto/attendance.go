package dto

// ── 出勤模块 DTO ──

// MarkAttendanceRequest 签到请求
type MarkAttendanceRequest struct {
	UniqueNumber string `json:"unique_number" binding:"required"`
}

// MarkAttendanceResponse 签到成功响应
type MarkAttendanceResponse struct {
	Message      string `json:"message"`
	UniqueNumber string `json:"unique_number"`
	Status       string `json:"status"`
}

// StudentNotFoundResponse 班级中不存在该学号时的 404 响应
type StudentNotFoundResponse struct {
	Message      string `json:"message"`
	UniqueNumber string `json:"unique_number"`
}

// AttendanceQuery 出勤查询参数，date 为空时取服务器当天
type AttendanceQuery struct {
	Date string `form:"date"`
}

// StudentBrief 学生简要信息
type StudentBrief struct {
	UniqueNumber string `json:"unique_number"`
	Name         string `json:"name"`
}

// PresentListResponse 出勤名单响应
type PresentListResponse struct {
	ClassID         uint           `json:"class_id"`
	Date            string         `json:"date"`
	PresentStudents []StudentBrief `json:"present_students"`
}

// AbsentListResponse 缺勤名单响应
type AbsentListResponse struct {
	ClassID        uint           `json:"class_id"`
	Date           string         `json:"date"`
	AbsentStudents []StudentBrief `json:"absent_students"`
}
