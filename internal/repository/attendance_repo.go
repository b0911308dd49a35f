package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"classroom-attendance/internal/model"
)

// AttendanceRepository 出勤记录数据访问接口
type AttendanceRepository interface {
	// Upsert 以 (student_id, date) 为键插入或覆盖状态
	Upsert(ctx context.Context, attendance *model.Attendance) error
	GetByStudentAndDate(ctx context.Context, studentID uint, date string) (*model.Attendance, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Upsert(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(attendance).Error
}

func (r *attendanceRepo) GetByStudentAndDate(ctx context.Context, studentID uint, date string) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND date = ?", studentID, date).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}
