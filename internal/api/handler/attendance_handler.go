package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"classroom-attendance/internal/dto"
	"classroom-attendance/internal/service"
	"classroom-attendance/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AttendanceHandler 出勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
	reportSvc     service.ReportService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService, reportSvc service.ReportService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc, reportSvc: reportSvc}
}

// MarkAttendance 签到
// POST /api/classes/:class_id/attendance
func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	classID, ok := MustGetClassID(c)
	if !ok {
		return
	}

	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			bodyTooLarge(c)
			return
		}
		response.BadRequest(c, "Unique number is required")
		return
	}

	resp, err := h.attendanceSvc.Mark(c.Request.Context(), classID, req.UniqueNumber)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			// 业务性 404：回显学号
			c.JSON(http.StatusNotFound, dto.StudentNotFoundResponse{
				Message:      "User not found",
				UniqueNumber: req.UniqueNumber,
			})
			return
		}
		response.InternalError(c, "Failed to mark attendance")
		return
	}

	response.OK(c, resp)
}

// ListPresent 出勤名单
// GET /api/classes/:class_id/present?date=YYYY-MM-DD
func (h *AttendanceHandler) ListPresent(c *gin.Context) {
	classID, query, ok := bindAttendanceQuery(c)
	if !ok {
		return
	}

	resp, err := h.attendanceSvc.ListPresent(c.Request.Context(), classID, query.Date)
	if err != nil {
		handleAttendanceError(c, err, "Failed to fetch present members")
		return
	}

	response.OK(c, resp)
}

// ListAbsent 缺勤名单（当天没有 Present 记录的学生）
// GET /api/classes/:class_id/absent?date=YYYY-MM-DD
func (h *AttendanceHandler) ListAbsent(c *gin.Context) {
	classID, query, ok := bindAttendanceQuery(c)
	if !ok {
		return
	}

	resp, err := h.attendanceSvc.ListAbsent(c.Request.Context(), classID, query.Date)
	if err != nil {
		handleAttendanceError(c, err, "Failed to fetch absent members")
		return
	}

	response.OK(c, resp)
}

// ExportReport 导出当日出勤报表（xlsx）
// GET /api/classes/:class_id/report?date=YYYY-MM-DD
func (h *AttendanceHandler) ExportReport(c *gin.Context) {
	classID, query, ok := bindAttendanceQuery(c)
	if !ok {
		return
	}

	buf, filename, err := h.reportSvc.ExportDaily(c.Request.Context(), classID, query.Date)
	if err != nil {
		handleAttendanceError(c, err, "Failed to export attendance report")
		return
	}

	response.Attachment(c, filename, xlsxContentType, buf.Bytes())
}

func bindAttendanceQuery(c *gin.Context) (uint, dto.AttendanceQuery, bool) {
	var query dto.AttendanceQuery
	classID, ok := MustGetClassID(c)
	if !ok {
		return 0, query, false
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return 0, query, false
	}
	return classID, query, true
}

// handleAttendanceError 统一处理出勤模块业务错误
func handleAttendanceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, "Class not found")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, "Date must be in YYYY-MM-DD format")
	default:
		response.InternalError(c, fallback)
	}
}
