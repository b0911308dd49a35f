package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor 在单个数据库事务内执行一组仓储操作
type Transactor interface {
	Transaction(ctx context.Context, fn func(txRepo *Repository) error) error
}

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Class      ClassRepository
	Student    StudentRepository
	Attendance AttendanceRepository
	Tx         Transactor
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Class:      NewClassRepo(db),
		Student:    NewStudentRepo(db),
		Attendance: NewAttendanceRepo(db),
		Tx:         &gormTransactor{db: db},
	}
}

// Transaction fn 返回错误或 panic 时整体回滚
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	return r.Tx.Transaction(ctx, fn)
}

type gormTransactor struct {
	db *gorm.DB
}

func (t *gormTransactor) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
