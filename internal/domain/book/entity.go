package book

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Category 图书分类（固定枚举）
type Category string

const (
	CategoryHistory Category = "history"
	CategoryRomance Category = "romance"
	CategoryHorror  Category = "horror"
	CategoryFantasy Category = "fantasy"
)

// Categories 全部合法分类
var Categories = []Category{CategoryHistory, CategoryRomance, CategoryHorror, CategoryFantasy}

// Valid 是否为合法分类
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// AuthorRef 作者引用展开后的投影（只含姓名）
type AuthorRef struct {
	ID        string
	FirstName string
	LastName  string
}

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 价格使用decimal.Decimal(避免浮点数精度问题)
// 2. AuthorIDs是对作者聚合的引用,只保存ID
// 3. Authors是读取时由仓储展开(populate)的作者姓名,写入时忽略
type Book struct {
	ID        string
	ASIN      string // 亚马逊标准识别号
	Title     string
	Img       string // 封面图片URL
	Price     decimal.Decimal
	Category  Category
	AuthorIDs []string
	Authors   []AuthorRef
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook 创建新图书(工厂方法)
func NewBook(asin, title, img string, price decimal.Decimal, category Category, authorIDs []string) *Book {
	now := time.Now()
	return &Book{
		ASIN:      asin,
		Title:     title,
		Img:       img,
		Price:     price,
		Category:  category,
		AuthorIDs: authorIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Patch 部分更新(nil表示不修改)
type Patch struct {
	ASIN      *string
	Title     *string
	Img       *string
	Price     *decimal.Decimal
	Category  *Category
	AuthorIDs []string // nil表示不修改,空切片表示清空
}

// Apply 合并部分更新字段
func (b *Book) Apply(p Patch) {
	if p.ASIN != nil {
		b.ASIN = *p.ASIN
	}
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Img != nil {
		b.Img = *p.Img
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.AuthorIDs != nil {
		b.AuthorIDs = p.AuthorIDs
	}
	b.UpdatedAt = time.Now()
}

// Validate 校验必填字段、分类枚举、价格范围
func (b *Book) Validate() error {
	var fields []string
	if b.ASIN == "" {
		fields = append(fields, "asin")
	}
	if b.Title == "" {
		fields = append(fields, "title")
	}
	if b.Img == "" {
		fields = append(fields, "img")
	}
	if b.Price.IsNegative() {
		fields = append(fields, "price")
	}
	if !b.Category.Valid() {
		fields = append(fields, "category")
	}
	if len(fields) > 0 {
		return apperrors.Validation(fields...)
	}
	return nil
}
