package dto

import (
	"github.com/xiebiao/bookshop/internal/domain/author"
)

// CreateAuthorRequest 创建作者请求
type CreateAuthorRequest struct {
	FirstName string `json:"firstName" binding:"required,max=100" example:"Frank"`
	LastName  string `json:"lastName" binding:"required,max=100" example:"Herbert"`
}

// UpdateAuthorRequest 部分更新作者
type UpdateAuthorRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName" binding:"omitempty,max=100"`
}

func (r *UpdateAuthorRequest) ToPatch() author.Patch {
	return author.Patch{FirstName: r.FirstName, LastName: r.LastName}
}

// AuthorResponse 作者详情
type AuthorResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName" example:"Frank"`
	LastName  string `json:"lastName" example:"Herbert"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func NewAuthorResponse(a *author.Author) *AuthorResponse {
	return &AuthorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: FormatTime(a.CreatedAt),
		UpdatedAt: FormatTime(a.UpdatedAt),
	}
}

// AuthorListResponse 作者列表
type AuthorListResponse struct {
	Total   int64             `json:"total"`
	Authors []*AuthorResponse `json:"authors"`
}

func NewAuthorListResponse(authors []*author.Author, total int64) *AuthorListResponse {
	items := make([]*AuthorResponse, 0, len(authors))
	for _, a := range authors {
		items = append(items, NewAuthorResponse(a))
	}
	return &AuthorListResponse{Total: total, Authors: items}
}
