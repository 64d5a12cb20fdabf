package mongo

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// bookRepository 图书仓储实现(MongoDB)
// 作者引用保存为ObjectID数组,读取时用第二次查询展开姓名(等价于populate)
type bookRepository struct {
	coll    *mongo.Collection
	authors *mongo.Collection
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *mongo.Database) book.Repository {
	return &bookRepository{
		coll:    db.Collection(collBooks),
		authors: db.Collection(collAuthors),
	}
}

// bookFields 对外字段名 → 文档字段名
var bookFields = map[string]string{
	book.FieldASIN:      "asin",
	book.FieldTitle:     "title",
	book.FieldCategory:  "category",
	book.FieldPrice:     "price",
	book.FieldCreatedAt: "createdAt",
}

var operators = map[book.Operator]string{
	book.OpEq:  "$eq",
	book.OpNe:  "$ne",
	book.OpGt:  "$gt",
	book.OpGte: "$gte",
	book.OpLt:  "$lt",
	book.OpLte: "$lte",
	book.OpIn:  "$in",
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	doc, err := toBookDoc(b)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}
	b.ID = doc.ID.Hex()
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, book.ErrBookNotFound(id)
	}

	var doc bookDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, book.ErrBookNotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	books, err := r.populate(ctx, []bookDoc{doc})
	if err != nil {
		return nil, err
	}
	return books[0], nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	doc, err := toBookDoc(b)
	if err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return book.ErrBookNotFound(b.ID)
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"asin":      doc.ASIN,
		"title":     doc.Title,
		"img":       doc.Img,
		"price":     doc.Price,
		"category":  doc.Category,
		"authors":   doc.Authors,
		"updatedAt": doc.UpdatedAt,
	}})
	if err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}
	if res.MatchedCount == 0 {
		return book.ErrBookNotFound(b.ID)
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return book.ErrBookNotFound(id)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperrors.Wrap(err, "删除图书失败")
	}
	if res.DeletedCount == 0 {
		return book.ErrBookNotFound(id)
	}
	return nil
}

// List 条件查询:先CountDocuments,再sort→skip→limit
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	filter := buildFilter(params.Conditions)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	opts := options.Find().
		SetSort(buildSort(params.Sort)).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.PageSize()))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}
	var docs []bookDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books, err := r.populate(ctx, docs)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// buildFilter 过滤条件 → 查询文档,同一字段的多个条件合并到一个子文档
func buildFilter(conds []book.Condition) bson.D {
	byField := make(map[string]bson.D)
	var order []string
	for _, c := range conds {
		field := bookFields[c.Field]
		if _, ok := byField[field]; !ok {
			order = append(order, field)
		}

		values := make(bson.A, len(c.Values))
		for i, v := range c.Values {
			if d, ok := v.(decimal.Decimal); ok {
				values[i] = toDecimal128(d)
				continue
			}
			values[i] = v
		}

		var operand interface{} = values
		if c.Op != book.OpIn {
			operand = values[0]
		}
		byField[field] = append(byField[field], bson.E{Key: operators[c.Op], Value: operand})
	}

	filter := bson.D{}
	for _, field := range order {
		filter = append(filter, bson.E{Key: field, Value: byField[field]})
	}
	return filter
}

// buildSort 用户排序键之后追加_id,保证分页稳定
func buildSort(fields []book.SortField) bson.D {
	sort := bson.D{}
	for _, s := range fields {
		dir := 1
		if s.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: bookFields[s.Field], Value: dir})
	}
	return append(sort, bson.E{Key: "_id", Value: 1})
}

// populate 展开作者姓名,只投影firstName/lastName
func (r *bookRepository) populate(ctx context.Context, docs []bookDoc) ([]*book.Book, error) {
	books := make([]*book.Book, len(docs))

	var ids []primitive.ObjectID
	for _, d := range docs {
		ids = append(ids, d.Authors...)
	}

	authorsByID := make(map[primitive.ObjectID]authorDoc)
	if len(ids) > 0 {
		opts := options.Find().SetProjection(bson.M{"firstName": 1, "lastName": 1})
		cur, err := r.authors.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
		if err != nil {
			return nil, apperrors.Wrap(err, "查询图书作者失败")
		}
		var authors []authorDoc
		if err := cur.All(ctx, &authors); err != nil {
			return nil, apperrors.Wrap(err, "查询图书作者失败")
		}
		for _, a := range authors {
			authorsByID[a.ID] = a
		}
	}

	for i := range docs {
		b := toBookEntity(&docs[i])
		for _, oid := range docs[i].Authors {
			if a, ok := authorsByID[oid]; ok {
				b.Authors = append(b.Authors, book.AuthorRef{
					ID:        a.ID.Hex(),
					FirstName: a.FirstName,
					LastName:  a.LastName,
				})
			}
		}
		books[i] = b
	}
	return books, nil
}

func toBookDoc(b *book.Book) (*bookDoc, error) {
	authors, ok := parseIDs(b.AuthorIDs)
	if !ok {
		return nil, book.ErrUnknownAuthor
	}
	return &bookDoc{
		ASIN:      b.ASIN,
		Title:     b.Title,
		Img:       b.Img,
		Price:     toDecimal128(b.Price),
		Category:  string(b.Category),
		Authors:   authors,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}, nil
}

func toBookEntity(doc *bookDoc) *book.Book {
	return &book.Book{
		ID:        doc.ID.Hex(),
		ASIN:      doc.ASIN,
		Title:     doc.Title,
		Img:       doc.Img,
		Price:     fromDecimal128(doc.Price),
		Category:  book.Category(doc.Category),
		AuthorIDs: hexIDs(doc.Authors),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
