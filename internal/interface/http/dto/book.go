package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/domain/book"
)

// CreateBookRequest 创建图书请求
// 字段缺失在绑定阶段拦截,分类枚举和作者引用由领域服务再校验一次
type CreateBookRequest struct {
	ASIN     string           `json:"asin" binding:"required,max=20" example:"B00K3Z0U1K"`
	Title    string           `json:"title" binding:"required,max=200" example:"Dune"`
	Img      string           `json:"img" binding:"required,max=500" example:"https://img.example.com/dune.jpg"`
	Price    *decimal.Decimal `json:"price" binding:"required" swaggertype:"number" example:"9.99"`
	Category string           `json:"category" binding:"required,oneof=history romance horror fantasy" example:"fantasy"`
	Authors  []string         `json:"authors" example:"0190f7a2-5c1e-7c3a-9d1b-2f6a7e8b9c0d"`
}

// ToUseCase 转换为应用层请求
func (r *CreateBookRequest) ToUseCase() appbook.CreateBookRequest {
	return appbook.CreateBookRequest{
		ASIN:      r.ASIN,
		Title:     r.Title,
		Img:       r.Img,
		Price:     *r.Price,
		Category:  r.Category,
		AuthorIDs: r.Authors,
	}
}

// UpdateBookRequest 部分更新请求,只修改出现的字段
type UpdateBookRequest struct {
	ASIN     *string          `json:"asin" binding:"omitempty,max=20"`
	Title    *string          `json:"title" binding:"omitempty,max=200"`
	Img      *string          `json:"img" binding:"omitempty,max=500"`
	Price    *decimal.Decimal `json:"price" swaggertype:"number"`
	Category *string          `json:"category" binding:"omitempty,oneof=history romance horror fantasy"`
	Authors  []string         `json:"authors"` // 传[]清空作者
}

// ToPatch 转换为领域层Patch
func (r *UpdateBookRequest) ToPatch() book.Patch {
	p := book.Patch{
		ASIN:      r.ASIN,
		Title:     r.Title,
		Img:       r.Img,
		Price:     r.Price,
		AuthorIDs: r.Authors,
	}
	if r.Category != nil {
		c := book.Category(*r.Category)
		p.Category = &c
	}
	return p
}

// AuthorRefResponse 展开后的作者
type AuthorRefResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName" example:"Frank"`
	LastName  string `json:"lastName" example:"Herbert"`
}

// BookResponse 图书详情
type BookResponse struct {
	ID        string              `json:"id"`
	ASIN      string              `json:"asin" example:"B00K3Z0U1K"`
	Title     string              `json:"title" example:"Dune"`
	Img       string              `json:"img"`
	Price     json.Number         `json:"price" swaggertype:"number" example:"9.99"`
	Category  string              `json:"category" example:"fantasy"`
	Authors   []AuthorRefResponse `json:"authors"`
	CreatedAt string              `json:"createdAt" example:"2024-01-15 10:30:00"`
	UpdatedAt string              `json:"updatedAt" example:"2024-01-15 10:30:00"`
}

// NewBookResponse 领域实体 → 响应
func NewBookResponse(b *book.Book) *BookResponse {
	authors := make([]AuthorRefResponse, 0, len(b.Authors))
	for _, a := range b.Authors {
		authors = append(authors, AuthorRefResponse{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName})
	}
	return &BookResponse{
		ID:        b.ID,
		ASIN:      b.ASIN,
		Title:     b.Title,
		Img:       b.Img,
		Price:     Price(b.Price),
		Category:  string(b.Category),
		Authors:   authors,
		CreatedAt: FormatTime(b.CreatedAt),
		UpdatedAt: FormatTime(b.UpdatedAt),
	}
}

// BookListResponse 图书列表
// total是过滤后的总数,与skip/limit无关
type BookListResponse struct {
	Links      PageLinks       `json:"links"`
	Total      int64           `json:"total" example:"42"`
	TotalPages int             `json:"totalPages" example:"5"`
	Skip       int             `json:"skip" example:"0"`
	Limit      int             `json:"limit" example:"10"`
	Books      []*BookResponse `json:"books"`
}

// NewBookListResponse 构建列表响应,links基于请求路径和原始查询串生成
func NewBookListResponse(result *appbook.ListBooksResponse, path, rawQuery string) *BookListResponse {
	books := make([]*BookResponse, 0, len(result.Books))
	for _, b := range result.Books {
		books = append(books, NewBookResponse(b))
	}
	return &BookListResponse{
		Links:      NewPageLinks(path, rawQuery, result.Skip, result.Limit, result.Total),
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Skip:       result.Skip,
		Limit:      result.Limit,
		Books:      books,
	}
}
