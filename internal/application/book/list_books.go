package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// ListBooksUseCase 图书目录查询用例
// 设计说明:
// 1. 过滤 → 计数 → 排序 → skip → limit,顺序固定,与参数出现顺序无关
// 2. total是过滤后的总数,不受分页影响
// 3. 作者引用展开为{id, firstName, lastName}
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksResponse 列表查询结果
type ListBooksResponse struct {
	Books      []*book.Book
	Total      int64
	Skip       int
	Limit      int
	TotalPages int
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, params book.ListParams) (_ *ListBooksResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "catalog", "ListBooks")
	defer func() { tracing.End(span, err) }()

	books, total, err := uc.bookService.ListBooks(ctx, params)
	if err != nil {
		return nil, err
	}

	limit := params.PageSize()
	span.SetAttributes(
		attribute.Int("books.conditions", len(params.Conditions)),
		attribute.Int64("books.total", total),
	)

	return &ListBooksResponse{
		Books:      books,
		Total:      total,
		Skip:       params.Offset(),
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// totalPages 计算总页数
func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
