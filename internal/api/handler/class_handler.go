package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"classroom-attendance/internal/dto"
	"classroom-attendance/internal/service"
	"classroom-attendance/pkg/response"
)

// ClassHandler 班级与名单导入 HTTP 处理器
type ClassHandler struct {
	classSvc  service.ClassService
	rosterSvc service.RosterService
}

// NewClassHandler 创建 ClassHandler
func NewClassHandler(classSvc service.ClassService, rosterSvc service.RosterService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc, rosterSvc: rosterSvc}
}

// CreateClass 创建班级
// POST /api/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			bodyTooLarge(c)
			return
		}
		response.BadRequest(c, "Class name is required")
		return
	}

	resp, err := h.classSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c, "Failed to create class")
		return
	}

	response.Created(c, resp)
}

// ImportStudents 导入学生名单
// POST /api/classes/:class_id/import
// multipart/form-data, field="file"（CSV，或扩展名为 .xlsx 的表格）
func (h *ClassHandler) ImportStudents(c *gin.Context) {
	classID, ok := MustGetClassID(c)
	if !ok {
		return
	}

	if err := h.classSvc.Ensure(c.Request.Context(), classID); err != nil {
		h.handleImportError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			bodyTooLarge(c)
			return
		}
		response.BadRequest(c, "CSV file is required")
		return
	}
	defer file.Close()

	rows, err := h.rosterSvc.ParseImportFile(header.Filename, file)
	if err != nil {
		h.handleImportError(c, err)
		return
	}

	total, err := h.rosterSvc.ImportStudents(c.Request.Context(), classID, rows)
	if err != nil {
		h.handleImportError(c, err)
		return
	}

	response.OK(c, dto.ImportStudentsResponse{
		Message:    "Users imported",
		TotalUsers: total,
	})
}

// handleImportError 统一处理名单导入业务错误
func (h *ClassHandler) handleImportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, "Class not found")
	case errors.Is(err, service.ErrImportTooMany):
		response.BadRequest(c, "CSV file has too many rows")
	case errors.Is(err, service.ErrImportNoData),
		errors.Is(err, service.ErrImportBadHeader),
		errors.Is(err, service.ErrImportMalformed):
		response.BadRequest(c, "CSV file is empty or invalid")
	case isBodyTooLarge(err):
		bodyTooLarge(c)
	default:
		response.InternalError(c, "Failed to import users")
	}
}
