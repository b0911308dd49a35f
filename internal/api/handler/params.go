package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"classroom-attendance/pkg/response"
)

// MustGetClassID 解析路径参数 class_id。
// 非正整数时写入 400 响应并返回 false，调用方应直接 return。
func MustGetClassID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("class_id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid class id")
		return 0, false
	}
	return uint(id), true
}

// isBodyTooLarge 判断错误是否由 BodyLimit 中间件触发
func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func bodyTooLarge(c *gin.Context) {
	response.Error(c, http.StatusRequestEntityTooLarge, "Request body too large")
}
