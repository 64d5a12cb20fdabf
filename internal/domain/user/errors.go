package user

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// ErrUserNotFound 用户不存在
func ErrUserNotFound(id string) error {
	return apperrors.NotFound(apperrors.ResourceUser, id)
}

// ErrPurchaseNotFound 购买记录不存在
func ErrPurchaseNotFound(id string) error {
	return apperrors.NotFound(apperrors.ResourcePurchase, id)
}
