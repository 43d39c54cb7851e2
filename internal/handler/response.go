package handler

import (
	"net/http"

	"github.com/blues/ccl/internal/ledger"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// LedgerErrorResponse 将账本错误类别映射为HTTP状态码
func LedgerErrorResponse(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch ledger.KindOf(err) {
	case ledger.KindNotFound:
		status = http.StatusNotFound
	case ledger.KindUnauthorized:
		status = http.StatusForbidden
	case ledger.KindInvalidArgument:
		status = http.StatusBadRequest
	case ledger.KindInvalidState:
		status = http.StatusConflict
	case ledger.KindTransferFailed:
		status = http.StatusBadGateway
	}
	ErrorResponse(c, status, err.Error())
}
