package book

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// CreateBookUseCase 创建图书用例
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// CreateBookRequest 创建图书请求
type CreateBookRequest struct {
	ASIN      string
	Title     string
	Img       string
	Price     decimal.Decimal
	Category  string
	AuthorIDs []string
}

// Execute 执行创建
// 校验规则在领域服务中(必填、分类枚举、作者存在)
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*book.Book, error) {
	b := book.NewBook(req.ASIN, req.Title, req.Img, req.Price, book.Category(req.Category), req.AuthorIDs)
	return uc.bookService.CreateBook(ctx, b)
}
