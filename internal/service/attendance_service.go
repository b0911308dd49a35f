package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"classroom-attendance/internal/dto"
	"classroom-attendance/internal/model"
	"classroom-attendance/internal/repository"
)

// ── 出勤模块业务错误 ──

var (
	ErrStudentNotFound = errors.New("班级中不存在该学号")
	ErrInvalidDate     = errors.New("日期格式必须为 YYYY-MM-DD")
)

// AttendanceService 出勤业务接口
//
// 缺勤定义为"当天没有 Present 记录"，而不是存储的缺勤状态。
type AttendanceService interface {
	// Mark 将学生当天（服务器本地时区）标记为 Present，重复标记只覆盖状态
	Mark(ctx context.Context, classID uint, uniqueNumber string) (*dto.MarkAttendanceResponse, error)
	ListPresent(ctx context.Context, classID uint, date string) (*dto.PresentListResponse, error)
	ListAbsent(ctx context.Context, classID uint, date string) (*dto.AbsentListResponse, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Mark ──────────────────────

func (s *attendanceService) Mark(ctx context.Context, classID uint, uniqueNumber string) (*dto.MarkAttendanceResponse, error) {
	student, err := s.repo.Student.GetByNumber(ctx, classID, uniqueNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败",
			zap.Uint("class_id", classID), zap.String("unique_number", uniqueNumber), zap.Error(err))
		return nil, err
	}

	attendance := &model.Attendance{
		StudentID: student.ID,
		Date:      s.today(),
		Status:    model.AttendanceStatusPresent,
	}
	if err := s.repo.Attendance.Upsert(ctx, attendance); err != nil {
		s.logger.Error("写入出勤记录失败",
			zap.Uint("student_id", student.ID), zap.String("date", attendance.Date), zap.Error(err))
		return nil, err
	}

	return &dto.MarkAttendanceResponse{
		Message:      "Attendance updated",
		UniqueNumber: uniqueNumber,
		Status:       model.AttendanceStatusPresent,
	}, nil
}

// ────────────────────── ListPresent / ListAbsent ──────────────────────

func (s *attendanceService) ListPresent(ctx context.Context, classID uint, date string) (*dto.PresentListResponse, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	if err := ensureClass(ctx, s.repo, s.logger, classID); err != nil {
		return nil, err
	}

	students, err := s.repo.Student.ListPresent(ctx, classID, date)
	if err != nil {
		s.logger.Error("查询出勤名单失败", zap.Uint("class_id", classID), zap.String("date", date), zap.Error(err))
		return nil, err
	}

	return &dto.PresentListResponse{
		ClassID:         classID,
		Date:            date,
		PresentStudents: toStudentBriefs(students),
	}, nil
}

func (s *attendanceService) ListAbsent(ctx context.Context, classID uint, date string) (*dto.AbsentListResponse, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	if err := ensureClass(ctx, s.repo, s.logger, classID); err != nil {
		return nil, err
	}

	students, err := s.repo.Student.ListAbsent(ctx, classID, date)
	if err != nil {
		s.logger.Error("查询缺勤名单失败", zap.Uint("class_id", classID), zap.String("date", date), zap.Error(err))
		return nil, err
	}

	return &dto.AbsentListResponse{
		ClassID:        classID,
		Date:           date,
		AbsentStudents: toStudentBriefs(students),
	}, nil
}

// ── 内部辅助方法 ──

func (s *attendanceService) today() string {
	return s.now().Format(model.DateLayout)
}

// resolveDate 空串取当天，否则校验 YYYY-MM-DD
func (s *attendanceService) resolveDate(date string) (string, error) {
	if date == "" {
		return s.today(), nil
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return "", ErrInvalidDate
	}
	return date, nil
}

func toStudentBriefs(students []model.Student) []dto.StudentBrief {
	result := make([]dto.StudentBrief, 0, len(students))
	for _, st := range students {
		result = append(result, dto.StudentBrief{
			UniqueNumber: st.UniqueNumber,
			Name:         st.Name,
		})
	}
	return result
}
