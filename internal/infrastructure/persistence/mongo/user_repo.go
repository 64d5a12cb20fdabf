package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/user"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// userRepository 用户仓储实现(MongoDB)
// 购买记录内嵌在用户文档中,追加/移除用$push/$pull单文档原子完成
type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *mongo.Database) user.Repository {
	return &userRepository{coll: db.Collection(collUsers)}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	doc := toUserDoc(u)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return apperrors.Wrap(err, "创建用户失败")
	}
	u.ID = doc.ID.Hex()
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, user.ErrUserNotFound(id)
	}

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrUserNotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&doc), nil
}

// Update 整体替换用户文档(含购买记录),后写者覆盖先写者
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return user.ErrUserNotFound(u.ID)
	}

	doc := toUserDoc(u)
	doc.ID = oid
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return apperrors.Wrap(err, "更新用户失败")
	}
	if res.MatchedCount == 0 {
		return user.ErrUserNotFound(u.ID)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user.ErrUserNotFound(id)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperrors.Wrap(err, "删除用户失败")
	}
	if res.DeletedCount == 0 {
		return user.ErrUserNotFound(id)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, skip, limit int) ([]*user.User, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户总数失败")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户列表失败")
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户列表失败")
	}

	users := make([]*user.User, len(docs))
	for i := range docs {
		users[i] = toUserEntity(&docs[i])
	}
	return users, total, nil
}

// PushPurchase $push追加购买记录,记录ID在这里生成
func (r *userRepository) PushPurchase(ctx context.Context, userID string, entry *user.PurchaseEntry) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, user.ErrUserNotFound(userID)
	}

	doc := toPurchaseDoc(entry)
	doc.ID = primitive.NewObjectID()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$push": bson.M{"purchaseHistory": doc},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "添加购买记录失败")
	}
	if res.MatchedCount == 0 {
		return nil, user.ErrUserNotFound(userID)
	}

	entry.ID = doc.ID.Hex()
	return r.FindByID(ctx, userID)
}

// PullPurchase $pull移除购买记录
// 注意:记录不存在(包括ID格式非法)时不报错,直接返回用户
func (r *userRepository) PullPurchase(ctx context.Context, userID, entryID string) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, user.ErrUserNotFound(userID)
	}

	entryOID, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return r.FindByID(ctx, userID)
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$pull": bson.M{"purchaseHistory": bson.M{"_id": entryOID}},
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "删除购买记录失败")
	}
	if res.MatchedCount == 0 {
		return nil, user.ErrUserNotFound(userID)
	}
	return r.FindByID(ctx, userID)
}

func toUserDoc(u *user.User) *userDoc {
	doc := &userDoc{
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		DateOfBirth:     u.DateOfBirth,
		Age:             u.Age,
		Professions:     u.Professions,
		Address:         addressDoc{Street: u.Address.Street, Number: u.Address.Number},
		PurchaseHistory: make([]purchaseDoc, 0, len(u.PurchaseHistory)),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	for i := range u.PurchaseHistory {
		p := toPurchaseDoc(&u.PurchaseHistory[i])
		if oid, err := primitive.ObjectIDFromHex(u.PurchaseHistory[i].ID); err == nil {
			p.ID = oid
		}
		doc.PurchaseHistory = append(doc.PurchaseHistory, *p)
	}
	return doc
}

func toPurchaseDoc(e *user.PurchaseEntry) *purchaseDoc {
	return &purchaseDoc{
		Title:        e.Title,
		Category:     string(e.Category),
		ASIN:         e.ASIN,
		Price:        toDecimal128(e.Price),
		PurchaseDate: e.PurchaseDate,
	}
}

func toUserEntity(doc *userDoc) *user.User {
	u := &user.User{
		ID:              doc.ID.Hex(),
		FirstName:       doc.FirstName,
		LastName:        doc.LastName,
		Email:           doc.Email,
		DateOfBirth:     doc.DateOfBirth,
		Age:             doc.Age,
		Professions:     doc.Professions,
		Address:         user.Address{Street: doc.Address.Street, Number: doc.Address.Number},
		PurchaseHistory: make([]user.PurchaseEntry, 0, len(doc.PurchaseHistory)),
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
	for _, p := range doc.PurchaseHistory {
		u.PurchaseHistory = append(u.PurchaseHistory, user.PurchaseEntry{
			ID:           p.ID.Hex(),
			Title:        p.Title,
			Category:     book.Category(p.Category),
			ASIN:         p.ASIN,
			Price:        fromDecimal128(p.Price),
			PurchaseDate: p.PurchaseDate,
		})
	}
	return u
}
