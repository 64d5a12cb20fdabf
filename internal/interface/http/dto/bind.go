package dto

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func init() {
	// 校验错误里的字段名使用json/form tag,与客户端看到的字段一致
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// BindError 把gin绑定错误转换为AppError
// - validator.ValidationErrors → ValidationError,Fields列出所有失败字段
// - JSON类型不匹配 → ValidationError,Fields为出错字段
// - 其他(如JSON语法错误) → 参数格式错误
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		seen := make(map[string]bool, len(verrs))
		for _, fe := range verrs {
			name := fe.Field()
			if seen[name] {
				continue
			}
			seen[name] = true
			fields = append(fields, name)
		}
		return apperrors.Validation(fields...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.Validationf(typeErr.Field, "字段%s类型错误", typeErr.Field)
	}

	return apperrors.New(apperrors.ErrCodeBindError, "参数格式错误: "+err.Error())
}
