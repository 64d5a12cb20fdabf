package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// maxUpsertAttempts 并发首次加购时唯一索引冲突后的重试次数
const maxUpsertAttempts = 3

// cartRepository 购物车仓储实现(MongoDB)
// 教学要点:
//  1. {owner:1}上的部分唯一索引(status=Active)保证每个用户最多一个Active购物车
//  2. 已有明细用位置操作符$inc累加,新明细用带$ne条件的$push追加,都是单文档原子更新
//  3. 两个请求同时创建购物车时,后到的一方触发唯一索引冲突,重试后走$inc/$push分支
type cartRepository struct {
	coll *mongo.Collection
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *mongo.Database) cart.Repository {
	return &cartRepository{coll: db.Collection(collCarts)}
}

// AddItem 加购
func (r *cartRepository) AddItem(ctx context.Context, ownerID, productID string, quantity int) (*cart.Cart, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpsertAttempts; attempt++ {
		err := r.addItemOnce(ctx, ownerID, productID, quantity)
		if err == nil {
			return r.FindActiveByOwner(ctx, ownerID)
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.Wrap(err, "加购失败")
		}
		lastErr = err
	}
	return nil, apperrors.Wrap(lastErr, "加购失败")
}

func (r *cartRepository) addItemOnce(ctx context.Context, ownerID, productID string, quantity int) error {
	now := time.Now()

	// 1. 明细已存在:累加数量
	incFilter := bson.M{
		"owner":              ownerID,
		"status":             string(cart.StatusActive),
		"products.productId": productID,
	}
	res, err := r.coll.UpdateOne(ctx, incFilter, bson.M{
		"$inc": bson.M{"products.$.quantity": quantity},
		"$set": bson.M{"updatedAt": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// 2. 明细不存在:追加,购物车不存在时一并创建
	pushFilter := bson.M{
		"owner":              ownerID,
		"status":             string(cart.StatusActive),
		"products.productId": bson.M{"$ne": productID},
	}
	_, err = r.coll.UpdateOne(ctx, pushFilter, bson.M{
		"$push":        bson.M{"products": lineItemDoc{ProductID: productID, Quantity: quantity}},
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}, options.Update().SetUpsert(true))
	return err
}

func (r *cartRepository) FindActiveByOwner(ctx context.Context, ownerID string) (*cart.Cart, error) {
	var doc cartDoc
	err := r.coll.FindOne(ctx, bson.M{
		"owner":  ownerID,
		"status": string(cart.StatusActive),
	}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cart.ErrCartNotFound(ownerID)
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&doc), nil
}

func toCartEntity(doc *cartDoc) *cart.Cart {
	c := &cart.Cart{
		ID:        doc.ID.Hex(),
		OwnerID:   doc.Owner,
		Status:    cart.Status(doc.Status),
		Products:  make([]cart.LineItem, 0, len(doc.Products)),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	for _, p := range doc.Products {
		c.Products = append(c.Products, cart.LineItem{ProductID: p.ProductID, Quantity: p.Quantity})
	}
	return c
}
