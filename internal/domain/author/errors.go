package author

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// ErrAuthorNotFound 作者不存在
func ErrAuthorNotFound(id string) error {
	return apperrors.NotFound(apperrors.ResourceAuthor, id)
}

