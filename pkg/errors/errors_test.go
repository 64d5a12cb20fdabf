package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	t.Run("按资源类型分配错误码", func(t *testing.T) {
		err := NotFound(ResourceBook, "abc")
		assert.Equal(t, ErrCodeBookNotFound, err.Code)
		assert.Equal(t, "book", err.Resource)
		assert.Equal(t, "abc", err.ResourceID)
		assert.Equal(t, "Book with id abc not found!", err.Message)
	})

	t.Run("未知资源使用通用错误码", func(t *testing.T) {
		err := NotFound("shelf", "1")
		assert.Equal(t, ErrCodeNotFound, err.Code)
		assert.True(t, IsNotFound(err))
	})
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NotFound(ResourceUser, "u1"))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindValidation, KindOf(Validation("age")))
	assert.Equal(t, KindOperational, KindOf(Wrap(errors.New("boom"), "数据库错误")))
	assert.Equal(t, KindOperational, KindOf(errors.New("plain")))

	assert.False(t, IsNotFound(nil))
	assert.False(t, IsValidation(nil))
}

func TestValidation(t *testing.T) {
	err := Validation("age", "email")
	assert.Equal(t, []string{"age", "email"}, err.Fields)
	assert.Contains(t, err.Message, "age, email")

	err = Validationf("category", "无效的分类: %s", "poetry")
	assert.Equal(t, []string{"category"}, err.Fields)
	assert.Equal(t, "无效的分类: poetry", err.Message)
}

func TestGetAppError(t *testing.T) {
	cause := errors.New("connection refused")

	appErr := GetAppError(cause)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.ErrorIs(t, appErr, cause)

	orig := NotFound(ResourceCart, "u1")
	assert.Same(t, orig, GetAppError(orig))
}
