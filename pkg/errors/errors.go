package errors

import (
	"errors"
	"fmt"
	"strings"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（按号段区分：校验错误、资源不存在、系统错误）
// 2. Message是用户友好的提示信息
// 3. Resource/ResourceID只在资源不存在时填充，指明是哪种资源、哪个ID
// 4. Fields只在参数校验失败时填充，列出出错的字段
// 5. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Code       int      `json:"code"`                  // 业务错误码
	Message    string   `json:"message"`               // 用户友好的错误提示
	Resource   string   `json:"resource,omitempty"`    // 资源类型（book/user/...）
	ResourceID string   `json:"resource_id,omitempty"` // 资源ID
	Fields     []string `json:"fields,omitempty"`      // 校验失败的字段
	Err        error    `json:"-"`                     // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为OperationalError，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 404xx: 资源不存在（NotFoundError）
// - 409xx: 参数错误（ValidationError）
// - 5xxxx: 服务端错误（OperationalError：数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	// 资源错误（40400-40499）
	ErrCodeNotFound         = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound     = 40401 // 用户不存在
	ErrCodeBookNotFound     = 40402 // 图书不存在
	ErrCodeAuthorNotFound   = 40404 // 作者不存在
	ErrCodePurchaseNotFound = 40405 // 购买记录不存在
	ErrCodeCartNotFound     = 40406 // 购物车不存在

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// 资源类型
const (
	ResourceUser     = "user"
	ResourceBook     = "book"
	ResourceAuthor   = "author"
	ResourcePurchase = "purchase"
	ResourceCart     = "cart"
)

var notFoundCodes = map[string]int{
	ResourceUser:     ErrCodeUserNotFound,
	ResourceBook:     ErrCodeBookNotFound,
	ResourceAuthor:   ErrCodeAuthorNotFound,
	ResourcePurchase: ErrCodePurchaseNotFound,
	ResourceCart:     ErrCodeCartNotFound,
}

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// NotFound 创建资源不存在错误
// 消息格式沿用 "Book with id X not found!"，便于客户端直接展示
func NotFound(resource, id string) *AppError {
	code, ok := notFoundCodes[resource]
	if !ok {
		code = ErrCodeNotFound
	}
	return &AppError{
		Code:       code,
		Message:    fmt.Sprintf("%s with id %s not found!", capitalize(resource), id),
		Resource:   resource,
		ResourceID: id,
	}
}

// Validation 创建参数校验错误
func Validation(fields ...string) *AppError {
	msg := "参数错误"
	if len(fields) > 0 {
		msg = "参数错误: " + strings.Join(fields, ", ")
	}
	return &AppError{
		Code:    ErrCodeInvalidParams,
		Message: msg,
		Fields:  fields,
	}
}

// Validationf 带自定义说明的参数校验错误
func Validationf(field, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidParams,
		Message: fmt.Sprintf(format, args...),
		Fields:  []string{field},
	}
}

// =========================================
// 辅助函数
// =========================================

// Kind 错误分类
type Kind int

const (
	KindOperational Kind = iota
	KindValidation
	KindNotFound
)

// KindOf 按错误码号段判断错误分类，非AppError一律视为OperationalError
func KindOf(err error) Kind {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return KindOperational
	}
	switch {
	case appErr.Code >= 40400 && appErr.Code < 40500:
		return KindNotFound
	case appErr.Code >= 40900 && appErr.Code < 41000:
		return KindValidation
	default:
		return KindOperational
	}
}

// IsNotFound 是否为资源不存在错误
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// IsValidation 是否为参数校验错误
func IsValidation(err error) bool {
	return err != nil && KindOf(err) == KindValidation
}

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
