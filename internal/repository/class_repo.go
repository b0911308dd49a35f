package repository

import (
	"context"

	"gorm.io/gorm"

	"classroom-attendance/internal/model"
)

// ClassRepository 班级数据访问接口
type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	GetByID(ctx context.Context, id uint) (*model.Class, error)
}

type classRepo struct {
	db *gorm.DB
}

// NewClassRepo 创建 ClassRepository 实例
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) Create(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepo) GetByID(ctx context.Context, id uint) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}
