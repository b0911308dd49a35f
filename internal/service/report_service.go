package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"classroom-attendance/internal/dto"
)

// ── 报表模块业务错误 ──

var (
	ErrReportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ReportService 出勤报表导出接口
type ReportService interface {
	// ExportDaily 导出某班某天的出勤/缺勤名单（xlsx），返回内容与建议文件名
	ExportDaily(ctx context.Context, classID uint, date string) (*bytes.Buffer, string, error)
}

type reportService struct {
	attendance AttendanceService
	logger     *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(attendance AttendanceService, logger *zap.Logger) ReportService {
	return &reportService{attendance: attendance, logger: logger}
}

const (
	sheetPresent = "Present"
	sheetAbsent  = "Absent"
)

func (s *reportService) ExportDaily(ctx context.Context, classID uint, date string) (*bytes.Buffer, string, error) {
	present, err := s.attendance.ListPresent(ctx, classID, date)
	if err != nil {
		return nil, "", err
	}
	// 与 present 使用同一日期，避免跨零点时两张表日期不一致
	absent, err := s.attendance.ListAbsent(ctx, classID, present.Date)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetPresent); err != nil {
		return nil, "", s.generateFailed(err)
	}
	if _, err := f.NewSheet(sheetAbsent); err != nil {
		return nil, "", s.generateFailed(err)
	}

	if err := writeStudentSheet(f, sheetPresent, present.PresentStudents); err != nil {
		return nil, "", s.generateFailed(err)
	}
	if err := writeStudentSheet(f, sheetAbsent, absent.AbsentStudents); err != nil {
		return nil, "", s.generateFailed(err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", s.generateFailed(err)
	}

	filename := fmt.Sprintf("attendance_%d_%s.xlsx", classID, present.Date)
	return buf, filename, nil
}

func writeStudentSheet(f *excelize.File, sheet string, students []dto.StudentBrief) error {
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"unique_number", "name"}); err != nil {
		return err
	}
	for i, st := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{st.UniqueNumber, st.Name}); err != nil {
			return err
		}
	}
	return nil
}

func (s *reportService) generateFailed(err error) error {
	s.logger.Error("生成出勤报表失败", zap.Error(err))
	return fmt.Errorf("%w: %v", ErrReportGenerateFail, err)
}
