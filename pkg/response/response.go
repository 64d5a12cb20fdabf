package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码，方便客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null
// 4. Error只在失败时返回，包含资源类型/ID或校验失败的字段
type Response struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Data    interface{}         `json:"data,omitempty"`
	Error   *apperrors.AppError `json:"error,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// NoContent 删除成功响应（204，无响应体）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	err := addToCart.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	// 提取AppError
	appErr := apperrors.GetAppError(err)

	// 记录详细错误到日志（包含内部错误）
	if appErr.Err != nil {
		zap.L().Error("request failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("path", c.Request.URL.Path),
			zap.Int("code", appErr.Code),
			zap.Error(appErr.Err),
		)
	}

	// 返回用户友好的错误信息
	c.JSON(StatusOf(appErr), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Error:   appErr,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	Error(c, apperrors.New(code, message))
}

// StatusOf 按错误分类映射HTTP状态码
func StatusOf(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
