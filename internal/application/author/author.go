package author

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/author"
)

// CreateAuthorUseCase 创建作者
type CreateAuthorUseCase struct {
	authorService author.Service
}

func NewCreateAuthorUseCase(authorService author.Service) *CreateAuthorUseCase {
	return &CreateAuthorUseCase{authorService: authorService}
}

func (uc *CreateAuthorUseCase) Execute(ctx context.Context, firstName, lastName string) (*author.Author, error) {
	return uc.authorService.CreateAuthor(ctx, firstName, lastName)
}

// GetAuthorUseCase 作者详情
type GetAuthorUseCase struct {
	authorService author.Service
}

func NewGetAuthorUseCase(authorService author.Service) *GetAuthorUseCase {
	return &GetAuthorUseCase{authorService: authorService}
}

func (uc *GetAuthorUseCase) Execute(ctx context.Context, id string) (*author.Author, error) {
	return uc.authorService.GetAuthor(ctx, id)
}

// UpdateAuthorUseCase 部分更新作者
type UpdateAuthorUseCase struct {
	authorService author.Service
}

func NewUpdateAuthorUseCase(authorService author.Service) *UpdateAuthorUseCase {
	return &UpdateAuthorUseCase{authorService: authorService}
}

func (uc *UpdateAuthorUseCase) Execute(ctx context.Context, id string, patch author.Patch) (*author.Author, error) {
	return uc.authorService.UpdateAuthor(ctx, id, patch)
}

// DeleteAuthorUseCase 删除作者
// 已引用该作者的图书保留ID,展开时跳过
type DeleteAuthorUseCase struct {
	authorService author.Service
}

func NewDeleteAuthorUseCase(authorService author.Service) *DeleteAuthorUseCase {
	return &DeleteAuthorUseCase{authorService: authorService}
}

func (uc *DeleteAuthorUseCase) Execute(ctx context.Context, id string) error {
	return uc.authorService.DeleteAuthor(ctx, id)
}

// ListAuthorsUseCase 分页查询作者
type ListAuthorsUseCase struct {
	authorService author.Service
}

func NewListAuthorsUseCase(authorService author.Service) *ListAuthorsUseCase {
	return &ListAuthorsUseCase{authorService: authorService}
}

// ListAuthorsResponse 分页结果
type ListAuthorsResponse struct {
	Authors []*author.Author
	Total   int64
}

func (uc *ListAuthorsUseCase) Execute(ctx context.Context, skip, limit int) (*ListAuthorsResponse, error) {
	authors, total, err := uc.authorService.ListAuthors(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return &ListAuthorsResponse{Authors: authors, Total: total}, nil
}
