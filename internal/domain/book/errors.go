package book

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrUnknownAuthor 引用了不存在的作者
	ErrUnknownAuthor = apperrors.Validationf("authors", "引用的作者不存在")

	// ErrInvalidLimit limit超出范围
	ErrInvalidLimit = apperrors.Validationf("limit", "limit必须在1-%d之间", MaxLimit)

	// ErrInvalidSkip skip为负数
	ErrInvalidSkip = apperrors.Validationf("skip", "skip不能为负数")
)

// ErrBookNotFound 图书不存在
func ErrBookNotFound(id string) error {
	return apperrors.NotFound(apperrors.ResourceBook, id)
}

