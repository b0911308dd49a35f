package service

import (
	"go.uber.org/zap"

	"classroom-attendance/config"
	"classroom-attendance/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Class      ClassService
	Roster     RosterService
	Attendance AttendanceService
	Report     ReportService
}

// NewService 创建 Service 聚合
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *Service {
	attendance := NewAttendanceService(repo, logger)
	return &Service{
		Class:      NewClassService(repo, logger),
		Roster:     NewRosterService(repo, cfg.Import.MaxRows, logger),
		Attendance: attendance,
		Report:     NewReportService(attendance, logger),
	}
}
