package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 作者引用存在book_authors表,读取时批量展开(两次查询,避免N+1)
type bookRepository struct {
	db *gorm.DB
	tx *TxManager
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db, tx: NewTxManager(db)}
}

// bookColumns 对外字段名 → 列名
var bookColumns = map[string]string{
	book.FieldASIN:      "asin",
	book.FieldTitle:     "title",
	book.FieldCategory:  "category",
	book.FieldPrice:     "price",
	book.FieldCreatedAt: "created_at",
}

// Create 创建图书(图书行与作者关联在同一事务中写入)
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	err := r.tx.Transaction(ctx, func(ctx context.Context) error {
		db := getDB(ctx, r.db)
		if err := db.Create(model).Error; err != nil {
			return apperrors.Wrap(err, "创建图书失败")
		}
		return r.replaceAuthors(db, model.ID, b.AuthorIDs)
	})
	if err != nil {
		return err
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var model BookModel
	db := getDB(ctx, r.db)

	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	books, err := r.populate(db, []BookModel{model})
	if err != nil {
		return nil, err
	}
	return books[0], nil
}

// Update 更新图书信息
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	return r.tx.Transaction(ctx, func(ctx context.Context) error {
		db := getDB(ctx, r.db)
		// Select显式列出字段,零值(如价格0)也会写入
		result := db.Model(&BookModel{}).
			Where("id = ?", b.ID).
			Select("asin", "title", "img", "price", "category", "updated_at").
			Updates(model)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "更新图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound(b.ID)
		}
		return r.replaceAuthors(db, b.ID, b.AuthorIDs)
	})
}

// Delete 删除图书(软删除)
func (r *bookRepository) Delete(ctx context.Context, id string) error {
	result := getDB(ctx, r.db).Where("id = ?", id).Delete(&BookModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound(id)
	}
	return nil
}

// List 条件查询图书列表
// 学习要点:
// 1. 先Count再分页,total不受skip/limit影响
// 2. 用户指定的排序键之后追加id,保证分页窗口稳定
// 3. 过滤条件使用clause表达式构建,列名来自白名单
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var (
		models []BookModel
		total  int64
	)

	db := getDB(ctx, r.db)
	query := db.Model(&BookModel{})
	for _, c := range params.Conditions {
		query = query.Where(conditionExpr(c))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	for _, s := range params.Sort {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: bookColumns[s.Field]},
			Desc:   s.Desc,
		})
	}
	query = query.Order("id ASC")

	if err := query.Offset(params.Offset()).Limit(params.PageSize()).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books, err := r.populate(db, models)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// conditionExpr 过滤条件 → SQL表达式
func conditionExpr(c book.Condition) clause.Expression {
	col := clause.Column{Name: bookColumns[c.Field]}
	switch c.Op {
	case book.OpNe:
		return clause.Neq{Column: col, Value: c.Values[0]}
	case book.OpGt:
		return clause.Gt{Column: col, Value: c.Values[0]}
	case book.OpGte:
		return clause.Gte{Column: col, Value: c.Values[0]}
	case book.OpLt:
		return clause.Lt{Column: col, Value: c.Values[0]}
	case book.OpLte:
		return clause.Lte{Column: col, Value: c.Values[0]}
	case book.OpIn:
		return clause.IN{Column: col, Values: c.Values}
	default:
		return clause.Eq{Column: col, Value: c.Values[0]}
	}
}

// replaceAuthors 重写图书的作者关联
func (r *bookRepository) replaceAuthors(db *gorm.DB, bookID string, authorIDs []string) error {
	if err := db.Where("book_id = ?", bookID).Delete(&BookAuthorModel{}).Error; err != nil {
		return apperrors.Wrap(err, "更新图书作者失败")
	}
	if len(authorIDs) == 0 {
		return nil
	}

	links := make([]BookAuthorModel, len(authorIDs))
	for i, authorID := range authorIDs {
		links[i] = BookAuthorModel{BookID: bookID, AuthorID: authorID, Position: i}
	}
	if err := db.Create(&links).Error; err != nil {
		return apperrors.Wrap(err, "更新图书作者失败")
	}
	return nil
}

// populate 展开作者引用,只取first_name/last_name
// 已删除的作者不出现在Authors中,但仍保留在AuthorIDs里
func (r *bookRepository) populate(db *gorm.DB, models []BookModel) ([]*book.Book, error) {
	books := make([]*book.Book, len(models))
	if len(models) == 0 {
		return books, nil
	}

	bookIDs := make([]string, len(models))
	for i := range models {
		bookIDs[i] = models[i].ID
	}

	var links []BookAuthorModel
	if err := db.Where("book_id IN ?", bookIDs).
		Order("book_id").Order("position").
		Find(&links).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书作者失败")
	}

	authorsByID := make(map[string]AuthorModel)
	if len(links) > 0 {
		authorIDs := make([]string, 0, len(links))
		for _, l := range links {
			authorIDs = append(authorIDs, l.AuthorID)
		}

		var authors []AuthorModel
		if err := db.Select("id", "first_name", "last_name").
			Where("id IN ?", authorIDs).
			Find(&authors).Error; err != nil {
			return nil, apperrors.Wrap(err, "查询图书作者失败")
		}
		for _, a := range authors {
			authorsByID[a.ID] = a
		}
	}

	linksByBook := make(map[string][]string)
	for _, l := range links {
		linksByBook[l.BookID] = append(linksByBook[l.BookID], l.AuthorID)
	}

	for i := range models {
		b := toBookEntity(&models[i])
		b.AuthorIDs = linksByBook[b.ID]
		for _, authorID := range b.AuthorIDs {
			if a, ok := authorsByID[authorID]; ok {
				b.Authors = append(b.Authors, book.AuthorRef{
					ID:        a.ID,
					FirstName: a.FirstName,
					LastName:  a.LastName,
				})
			}
		}
		books[i] = b
	}
	return books, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:        b.ID,
		ASIN:      b.ASIN,
		Title:     b.Title,
		Img:       b.Img,
		Price:     b.Price,
		Category:  string(b.Category),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:        model.ID,
		ASIN:      model.ASIN,
		Title:     model.Title,
		Img:       model.Img,
		Price:     model.Price,
		Category:  book.Category(model.Category),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
