package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"classroom-attendance/internal/model"
	"classroom-attendance/internal/repository"
)

// ── 名单导入业务错误 ──

var (
	ErrImportNoData    = errors.New("名单文件无数据行（第一行为表头）")
	ErrImportBadHeader = errors.New("名单表头缺少必要列（unique_number/name）")
	ErrImportMalformed = errors.New("名单文件无法解析")
	ErrImportTooMany   = errors.New("名单数据行数超过上限")
)

// RosterService 班级名单导入业务接口
type RosterService interface {
	// ParseImportFile 按文件扩展名解析 CSV 或 XLSX 名单
	ParseImportFile(filename string, reader io.Reader) ([]ImportStudentRow, error)
	// ImportStudents 去重后在单个事务内 upsert 所有学生，返回写入的学号数量
	ImportStudents(ctx context.Context, classID uint, rows []ImportStudentRow) (int, error)
}

// ImportStudentRow 名单解析后的单行数据
type ImportStudentRow struct {
	Row          int
	UniqueNumber string
	Name         string
}

type rosterService struct {
	repo    *repository.Repository
	maxRows int
	logger  *zap.Logger
}

// NewRosterService 创建 RosterService 实例
func NewRosterService(repo *repository.Repository, maxRows int, logger *zap.Logger) RosterService {
	return &rosterService{repo: repo, maxRows: maxRows, logger: logger}
}

// ────────────────────── ParseImportFile ──────────────────────

func (s *rosterService) ParseImportFile(filename string, reader io.Reader) ([]ImportStudentRow, error) {
	var (
		records [][]string
		err     error
	)
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		records, err = readXLSX(reader)
	} else {
		records, err = readCSV(reader)
	}
	if err != nil {
		return nil, err
	}

	return s.rowsFromRecords(records)
}

func readCSV(reader io.Reader) ([][]string, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportMalformed, err)
	}
	return records, nil
}

func readXLSX(reader io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportMalformed, err)
	}
	defer f.Close()

	records, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportMalformed, err)
	}
	return records, nil
}

func (s *rosterService) rowsFromRecords(records [][]string) ([]ImportStudentRow, error) {
	if len(records) < 2 {
		return nil, ErrImportNoData
	}

	numberIdx, nameIdx := parseHeaderIndex(records[0])
	if numberIdx < 0 || nameIdx < 0 {
		return nil, ErrImportBadHeader
	}

	var rows []ImportStudentRow
	for i := 1; i < len(records); i++ {
		record := records[i]
		item := ImportStudentRow{Row: i + 1}

		if numberIdx < len(record) {
			item.UniqueNumber = strings.TrimSpace(record[numberIdx])
		}
		if nameIdx < len(record) {
			item.Name = strings.TrimSpace(record[nameIdx])
		}

		// 跳过全空行
		if item.UniqueNumber == "" && item.Name == "" {
			continue
		}

		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > s.maxRows {
		return nil, fmt.Errorf("%w: %d > %d", ErrImportTooMany, len(rows), s.maxRows)
	}

	return rows, nil
}

// parseHeaderIndex 返回 unique_number 与 name 两列的索引，缺失为 -1
func parseHeaderIndex(header []string) (numberIdx, nameIdx int) {
	numberIdx, nameIdx = -1, -1
	for i, h := range header {
		col := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		switch col {
		case "unique_number":
			if numberIdx < 0 {
				numberIdx = i
			}
		case "name":
			if nameIdx < 0 {
				nameIdx = i
			}
		}
	}
	return numberIdx, nameIdx
}

// ────────────────────── ImportStudents ──────────────────────

func (s *rosterService) ImportStudents(ctx context.Context, classID uint, rows []ImportStudentRow) (int, error) {
	retained := dedupeRows(rows)

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		for _, row := range retained {
			student := &model.Student{
				UniqueNumber: row.UniqueNumber,
				Name:         row.Name,
				ClassID:      classID,
			}
			if err := txRepo.Student.Upsert(ctx, student); err != nil {
				return fmt.Errorf("第 %d 行写入数据库失败: %w", row.Row, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("导入学生失败，事务回滚",
			zap.Uint("class_id", classID), zap.Int("rows", len(retained)), zap.Error(err))
		return 0, err
	}

	s.logger.Info("导入学生完成", zap.Uint("class_id", classID), zap.Int("total", len(retained)))
	return len(retained), nil
}

// dedupeRows 丢弃学号或姓名为空的行；同一文件内学号重复时保留首次出现
func dedupeRows(rows []ImportStudentRow) []ImportStudentRow {
	seen := make(map[string]struct{}, len(rows))
	retained := make([]ImportStudentRow, 0, len(rows))
	for _, row := range rows {
		if row.UniqueNumber == "" || row.Name == "" {
			continue
		}
		if _, ok := seen[row.UniqueNumber]; ok {
			continue
		}
		seen[row.UniqueNumber] = struct{}{}
		retained = append(retained, row)
	}
	return retained
}
