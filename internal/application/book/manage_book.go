package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// GetBookUseCase 图书详情
type GetBookUseCase struct {
	bookService book.Service
}

func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

func (uc *GetBookUseCase) Execute(ctx context.Context, id string) (*book.Book, error) {
	return uc.bookService.GetBook(ctx, id)
}

// UpdateBookUseCase 部分更新图书,只修改请求中出现的字段
type UpdateBookUseCase struct {
	bookService book.Service
}

func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

func (uc *UpdateBookUseCase) Execute(ctx context.Context, id string, patch book.Patch) (*book.Book, error) {
	return uc.bookService.UpdateBook(ctx, id, patch)
}

// DeleteBookUseCase 删除图书
type DeleteBookUseCase struct {
	bookService book.Service
}

func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, id string) error {
	return uc.bookService.DeleteBook(ctx, id)
}
