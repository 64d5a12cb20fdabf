package dto

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func bindJSON(t *testing.T, body string, v interface{}) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(v)
}

func TestBindError(t *testing.T) {
	t.Run("校验失败列出json字段名", func(t *testing.T) {
		var req CreateUserRequest
		err := bindJSON(t, `{"firstName":"Ada","email":"bad","age":10}`, &req)
		require.Error(t, err)

		appErr := apperrors.GetAppError(BindError(err))
		assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
		assert.ElementsMatch(t, []string{"lastName", "email", "dateOfBirth", "age"}, appErr.Fields)
	})

	t.Run("类型错误", func(t *testing.T) {
		var req AddToCartRequest
		err := bindJSON(t, `{"bookId":"b1","quantity":"two"}`, &req)
		require.Error(t, err)

		appErr := apperrors.GetAppError(BindError(err))
		assert.True(t, apperrors.IsValidation(appErr))
		assert.Equal(t, []string{"quantity"}, appErr.Fields)
	})

	t.Run("JSON语法错误", func(t *testing.T) {
		var req AddToCartRequest
		err := bindJSON(t, `{"bookId":`, &req)
		require.Error(t, err)

		appErr := apperrors.GetAppError(BindError(err))
		assert.Equal(t, apperrors.ErrCodeBindError, appErr.Code)
		assert.True(t, apperrors.IsValidation(appErr))
	})
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("dateOfBirth", "1990-12-10")
	require.NoError(t, err)
	assert.Equal(t, 1990, d.Year())

	_, err = ParseDate("dateOfBirth", "1990-12-10T08:00:00Z")
	assert.NoError(t, err)

	_, err = ParseDate("dateOfBirth", "10/12/1990")
	assert.True(t, apperrors.IsValidation(err))
}
