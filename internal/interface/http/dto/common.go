package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 时间格式
const (
	TimeLayout = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
)

// IDResponse 创建成功只返回ID
type IDResponse struct {
	ID string `json:"id" example:"0190f7a2-5c1e-7c3a-9d1b-2f6a7e8b9c0d"`
}

// PageQuery skip/limit分页参数(作者、用户列表)
type PageQuery struct {
	Skip  int `form:"skip" binding:"omitempty,min=0" example:"0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
}

// Normalize limit缺省时取10
func (q PageQuery) Normalize() (skip, limit int) {
	limit = q.Limit
	if limit == 0 {
		limit = 10
	}
	return q.Skip, limit
}

// Price 价格按JSON数字输出(9.99而不是"9.99")
func Price(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// FormatTime 格式化时间,零值输出空串
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// ParseDate 解析日期,支持2006-01-02和RFC3339
func ParseDate(field, s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, apperrors.Validationf(field, "日期格式错误: %s", s)
	}
	return t, nil
}
