package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"classroom-attendance/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	// Upsert 以 (unique_number, class_id) 为键插入或更新姓名
	Upsert(ctx context.Context, student *model.Student) error
	GetByNumber(ctx context.Context, classID uint, uniqueNumber string) (*model.Student, error)
	CountByClass(ctx context.Context, classID uint) (int64, error)
	// ListPresent 返回在 date 当天有 Present 记录的学生
	ListPresent(ctx context.Context, classID uint, date string) ([]model.Student, error)
	// ListAbsent 返回在 date 当天没有 Present 记录的学生
	ListAbsent(ctx context.Context, classID uint, date string) ([]model.Student, error)
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

const presentOnDate = "EXISTS (SELECT 1 FROM attendances a WHERE a.student_id = students.id AND a.date = ? AND a.status = ?)"

func (r *studentRepo) Upsert(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "unique_number"}, {Name: "class_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).
		Create(student).Error
}

func (r *studentRepo) GetByNumber(ctx context.Context, classID uint, uniqueNumber string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND unique_number = ?", classID, uniqueNumber).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) CountByClass(ctx context.Context, classID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("class_id = ?", classID).
		Count(&count).Error
	return count, err
}

func (r *studentRepo) ListPresent(ctx context.Context, classID uint, date string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Select("id", "unique_number", "name", "class_id").
		Where("class_id = ?", classID).
		Where(presentOnDate, date, model.AttendanceStatusPresent).
		Find(&students).Error
	return students, err
}

func (r *studentRepo) ListAbsent(ctx context.Context, classID uint, date string) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Select("id", "unique_number", "name", "class_id").
		Where("class_id = ?", classID).
		Where("NOT "+presentOnDate, date, model.AttendanceStatusPresent).
		Find(&students).Error
	return students, err
}
