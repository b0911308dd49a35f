package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"classroom-attendance/internal/dto"
	"classroom-attendance/internal/model"
	"classroom-attendance/internal/repository"
)

// ── 班级模块业务错误 ──

var (
	ErrClassNotFound = errors.New("班级不存在")
)

// ClassService 班级业务接口
type ClassService interface {
	Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.CreateClassResponse, error)
	// Ensure 班级不存在时返回 ErrClassNotFound
	Ensure(ctx context.Context, classID uint) error
}

type classService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassService 创建 ClassService 实例
func NewClassService(repo *repository.Repository, logger *zap.Logger) ClassService {
	return &classService{repo: repo, logger: logger}
}

func (s *classService) Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.CreateClassResponse, error) {
	class := &model.Class{Name: req.ClassName}

	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.logger.Error("创建班级失败", zap.String("name", req.ClassName), zap.Error(err))
		return nil, err
	}

	return &dto.CreateClassResponse{
		Message: "Class created",
		ClassID: class.ID,
	}, nil
}

func (s *classService) Ensure(ctx context.Context, classID uint) error {
	return ensureClass(ctx, s.repo, s.logger, classID)
}

func ensureClass(ctx context.Context, repo *repository.Repository, logger *zap.Logger, classID uint) error {
	if _, err := repo.Class.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		logger.Error("查询班级失败", zap.Uint("class_id", classID), zap.Error(err))
		return err
	}
	return nil
}
