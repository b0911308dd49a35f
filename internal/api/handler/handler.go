package handler

import "classroom-attendance/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	System     *SystemHandler
	Class      *ClassHandler
	Attendance *AttendanceHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, checks ...HealthCheck) *Handler {
	return &Handler{
		System:     NewSystemHandler(checks...),
		Class:      NewClassHandler(svc.Class, svc.Roster),
		Attendance: NewAttendanceHandler(svc.Attendance, svc.Report),
	}
}
