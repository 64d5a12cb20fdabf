package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xiebiao/bookshop/internal/domain/author"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// authorRepository 作者仓储实现(MongoDB)
type authorRepository struct {
	coll *mongo.Collection
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *mongo.Database) author.Repository {
	return &authorRepository{coll: db.Collection(collAuthors)}
}

func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	doc := authorDoc{
		ID:        primitive.NewObjectID(),
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}
	a.ID = doc.ID.Hex()
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id string) (*author.Author, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, author.ErrAuthorNotFound(id)
	}

	var doc authorDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, author.ErrAuthorNotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&doc), nil
}

// FindByIDs 批量查询;非法ID视为不存在(调用方按数量判断)
func (r *authorRepository) FindByIDs(ctx context.Context, ids []string) ([]*author.Author, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	var docs []authorDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, apperrors.Wrap(err, "查询作者失败")
	}

	authors := make([]*author.Author, len(docs))
	for i := range docs {
		authors[i] = toAuthorEntity(&docs[i])
	}
	return authors, nil
}

func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return author.ErrAuthorNotFound(a.ID)
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"firstName": a.FirstName,
		"lastName":  a.LastName,
		"updatedAt": a.UpdatedAt,
	}})
	if err != nil {
		return apperrors.Wrap(err, "更新作者失败")
	}
	if res.MatchedCount == 0 {
		return author.ErrAuthorNotFound(a.ID)
	}
	return nil
}

// Delete 删除作者,图书中的引用保留,展开时跳过
func (r *authorRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return author.ErrAuthorNotFound(id)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperrors.Wrap(err, "删除作者失败")
	}
	if res.DeletedCount == 0 {
		return author.ErrAuthorNotFound(id)
	}
	return nil
}

func (r *authorRepository) List(ctx context.Context, skip, limit int) ([]*author.Author, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者总数失败")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者列表失败")
	}
	var docs []authorDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者列表失败")
	}

	authors := make([]*author.Author, len(docs))
	for i := range docs {
		authors[i] = toAuthorEntity(&docs[i])
	}
	return authors, total, nil
}

func toAuthorEntity(doc *authorDoc) *author.Author {
	return &author.Author{
		ID:        doc.ID.Hex(),
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
