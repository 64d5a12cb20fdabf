package author

import (
	"time"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Author 作者实体
// 被多本图书通过ID引用,图书列表展开时只取FirstName/LastName
type Author struct {
	ID        string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor 创建作者
func NewAuthor(firstName, lastName string) *Author {
	now := time.Now()
	return &Author{
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Patch 部分更新
type Patch struct {
	FirstName *string
	LastName  *string
}

// Apply 合并部分更新字段
func (a *Author) Apply(p Patch) {
	if p.FirstName != nil {
		a.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		a.LastName = *p.LastName
	}
	a.UpdatedAt = time.Now()
}

// Validate 姓和名都是必填
func (a *Author) Validate() error {
	var fields []string
	if a.FirstName == "" {
		fields = append(fields, "firstName")
	}
	if a.LastName == "" {
		fields = append(fields, "lastName")
	}
	if len(fields) > 0 {
		return apperrors.Validation(fields...)
	}
	return nil
}
