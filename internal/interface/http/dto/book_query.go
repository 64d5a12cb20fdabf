package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 保留参数,其余参数都视为过滤条件
const (
	paramSort   = "sort"
	paramSkip   = "skip"
	paramOffset = "offset"
	paramLimit  = "limit"
)

// 双字符操作符必须排在单字符前面
var operators = []struct {
	token string
	op    book.Operator
}{
	{"!=", book.OpNe},
	{">=", book.OpGte},
	{"<=", book.OpLte},
	{">", book.OpGt},
	{"<", book.OpLt},
	{"=", book.OpEq},
}

// ParseListBooksQuery 解析图书列表查询串
//
// 语法:
//
//	category=fantasy            等于
//	category=history,fantasy    多值(in)
//	category!=horror            不等于
//	price>10 price>=10 price<20 price<=20
//	sort=-price,title           多字段排序,-表示降序
//	skip=20(或offset=20) limit=10
//
// price>10这类参数在url.ParseQuery里会被拆成奇怪的键值,所以按原始串逐段解析
func ParseListBooksQuery(rawQuery string) (book.ListParams, error) {
	var params book.ListParams

	for _, pair := range splitPairs(rawQuery) {
		key, op, value, err := splitCondition(pair)
		if err != nil {
			return params, err
		}

		switch key {
		case paramSort:
			params.Sort = append(params.Sort, parseSort(value)...)
		case paramSkip, paramOffset:
			n, err := parseInt(paramSkip, op, value)
			if err != nil {
				return params, err
			}
			params.Skip = &n
		case paramLimit:
			n, err := parseInt(paramLimit, op, value)
			if err != nil {
				return params, err
			}
			params.Limit = &n
		default:
			values := []string{value}
			if op == book.OpEq && strings.Contains(value, ",") {
				op = book.OpIn
				values = splitList(value)
			}
			params.Conditions = append(params.Conditions, book.Condition{
				Field:     key,
				Op:        op,
				RawValues: values,
			})
		}
	}

	return params, nil
}

func splitPairs(rawQuery string) []string {
	var pairs []string
	for _, p := range strings.Split(rawQuery, "&") {
		if p != "" {
			pairs = append(pairs, p)
		}
	}
	return pairs
}

// splitCondition 解码后按第一个操作符切分
func splitCondition(pair string) (string, book.Operator, string, error) {
	decoded, err := url.QueryUnescape(pair)
	if err != nil {
		return "", "", "", apperrors.Validationf("query", "查询参数编码错误: %s", pair)
	}

	idx, match := -1, -1
	for i, o := range operators {
		pos := strings.Index(decoded, o.token)
		if pos < 0 {
			continue
		}
		// 位置最靠前的操作符生效;同一位置取更长的(前面的)
		if idx < 0 || pos < idx {
			idx, match = pos, i
		}
	}
	if idx <= 0 {
		return "", "", "", apperrors.Validationf("query", "无法解析查询条件: %s", decoded)
	}

	o := operators[match]
	key := strings.TrimSpace(decoded[:idx])
	value := strings.TrimSpace(decoded[idx+len(o.token):])
	return key, o.op, value, nil
}

func parseSort(value string) []book.SortField {
	var fields []book.SortField
	for _, f := range splitList(value) {
		if strings.HasPrefix(f, "-") {
			fields = append(fields, book.SortField{Field: f[1:], Desc: true})
			continue
		}
		fields = append(fields, book.SortField{Field: strings.TrimPrefix(f, "+")})
	}
	return fields
}

func parseInt(field string, op book.Operator, value string) (int, error) {
	if op != book.OpEq {
		return 0, apperrors.Validationf(field, "%s只支持=", field)
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperrors.Validationf(field, "%s必须是整数", field)
	}
	return n, nil
}

func splitList(value string) []string {
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// PageLinks 分页链接,prev/next不存在时省略
type PageLinks struct {
	First string `json:"first"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last"`
}

// NewPageLinks 保留原始过滤/排序参数,只替换skip和limit
func NewPageLinks(path, rawQuery string, skip, limit int, total int64) PageLinks {
	var kept []string
	for _, pair := range splitPairs(rawQuery) {
		key, _, _, err := splitCondition(pair)
		if err == nil && (key == paramSkip || key == paramOffset || key == paramLimit) {
			continue
		}
		kept = append(kept, pair)
	}

	link := func(s int) string {
		q := append(append([]string{}, kept...), fmt.Sprintf("skip=%d", s), fmt.Sprintf("limit=%d", limit))
		return path + "?" + strings.Join(q, "&")
	}

	last := 0
	if total > 0 && limit > 0 {
		last = int((total - 1) / int64(limit) * int64(limit))
	}

	links := PageLinks{First: link(0), Last: link(last)}
	if skip > 0 {
		prev := skip - limit
		if prev < 0 {
			prev = 0
		}
		links.Prev = link(prev)
	}
	if int64(skip+limit) < total {
		links.Next = link(skip + limit)
	}
	return links
}
