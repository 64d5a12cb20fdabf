package book

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 列表查询默认值
const (
	DefaultSkip  = 0
	DefaultLimit = 10
	MaxLimit     = 100
)

// 可过滤/排序的字段(对外字段名)
const (
	FieldASIN      = "asin"
	FieldTitle     = "title"
	FieldCategory  = "category"
	FieldPrice     = "price"
	FieldCreatedAt = "createdAt"
)

var filterableFields = map[string]bool{
	FieldASIN:     true,
	FieldTitle:    true,
	FieldCategory: true,
	FieldPrice:    true,
}

var sortableFields = map[string]bool{
	FieldASIN:      true,
	FieldTitle:     true,
	FieldCategory:  true,
	FieldPrice:     true,
	FieldCreatedAt: true,
}

// Operator 过滤操作符
type Operator string

const (
	OpEq  Operator = "eq"
	OpNe  Operator = "ne"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
	OpIn  Operator = "in"
)

// Condition 单个过滤条件
// RawValues是原始字符串,Normalize后Values按字段类型转换(price为decimal.Decimal,其余为string)
type Condition struct {
	Field     string
	Op        Operator
	RawValues []string
	Values    []interface{}
}

// SortField 排序字段
type SortField struct {
	Field string
	Desc  bool
}

// ListParams 列表查询参数
type ListParams struct {
	Conditions []Condition
	Sort       []SortField
	Skip       *int // nil表示使用默认值
	Limit      *int
}

// Offset 生效的skip
func (p ListParams) Offset() int {
	if p.Skip == nil {
		return DefaultSkip
	}
	return *p.Skip
}

// PageSize 生效的limit
func (p ListParams) PageSize() int {
	if p.Limit == nil {
		return DefaultLimit
	}
	return *p.Limit
}

// Normalize 校验字段白名单并转换过滤值类型
func (p *ListParams) Normalize() error {
	if p.Skip != nil && *p.Skip < 0 {
		return ErrInvalidSkip
	}
	if p.Limit != nil && (*p.Limit < 1 || *p.Limit > MaxLimit) {
		return ErrInvalidLimit
	}

	for i := range p.Conditions {
		c := &p.Conditions[i]
		if !filterableFields[c.Field] {
			return apperrors.Validationf(c.Field, "不支持按%s过滤", c.Field)
		}
		if len(c.RawValues) == 0 {
			return apperrors.Validationf(c.Field, "过滤条件%s缺少值", c.Field)
		}
		if len(c.RawValues) > 1 && c.Op != OpIn {
			return apperrors.Validationf(c.Field, "操作符%s只接受单个值", c.Op)
		}

		c.Values = make([]interface{}, len(c.RawValues))
		for j, raw := range c.RawValues {
			if c.Field == FieldPrice {
				d, err := decimal.NewFromString(raw)
				if err != nil {
					return apperrors.Validationf(c.Field, "价格格式错误: %s", raw)
				}
				c.Values[j] = d
				continue
			}
			c.Values[j] = raw
		}
	}

	for _, s := range p.Sort {
		if !sortableFields[s.Field] {
			return apperrors.Validationf("sort", "不支持按%s排序", s.Field)
		}
	}
	return nil
}
