package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// 教学要点:加购的并发正确性完全由两个唯一索引保证,而不是"先查再写"
//  1. carts.active_owner唯一 → 每个用户最多一个Active购物车
//  2. cart_items(cart_id, book_id)唯一 → 同一本书只占一行
//
// 两步都是INSERT ... ON CONFLICT,并发请求不会产生重复购物车或重复明细
type cartRepository struct {
	db *gorm.DB
	tx *TxManager
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db, tx: NewTxManager(db)}
}

// AddItem 加购
// SQL示意:
//
//	INSERT INTO carts (...) VALUES (...) ON CONFLICT (active_owner) DO NOTHING;
//	SELECT * FROM carts WHERE active_owner = ?;
//	INSERT INTO cart_items (cart_id, book_id, quantity) VALUES (?, ?, ?)
//	  ON CONFLICT (cart_id, book_id) DO UPDATE SET quantity = cart_items.quantity + ?;
func (r *cartRepository) AddItem(ctx context.Context, ownerID, productID string, quantity int) (*cart.Cart, error) {
	var result CartModel

	err := r.tx.Transaction(ctx, func(ctx context.Context) error {
		db := getDB(ctx, r.db)

		// 1. 获取或创建Active购物车
		owner := ownerID
		fresh := &CartModel{
			OwnerID:     ownerID,
			Status:      string(cart.StatusActive),
			ActiveOwner: &owner,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "active_owner"}},
			DoNothing: true,
		}).Create(fresh).Error; err != nil {
			return apperrors.Wrap(err, "创建购物车失败")
		}

		var active CartModel
		if err := db.Where("active_owner = ?", ownerID).First(&active).Error; err != nil {
			return apperrors.Wrap(err, "查询购物车失败")
		}

		// 2. 追加明细或累加数量
		now := time.Now()
		item := &CartItemModel{
			CartID:   active.ID,
			BookID:   productID,
			Quantity: quantity,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "book_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + ?", quantity),
				"updated_at": now,
			}),
		}).Create(item).Error; err != nil {
			return apperrors.Wrap(err, "加购失败")
		}

		if err := db.Model(&CartModel{}).Where("id = ?", active.ID).
			Update("updated_at", now).Error; err != nil {
			return apperrors.Wrap(err, "更新购物车失败")
		}

		return db.Preload("Items", orderByID).Where("id = ?", active.ID).First(&result).Error
	})
	if err != nil {
		return nil, err
	}

	return toCartEntity(&result), nil
}

// FindActiveByOwner 查询用户的Active购物车
func (r *cartRepository) FindActiveByOwner(ctx context.Context, ownerID string) (*cart.Cart, error) {
	var model CartModel
	err := getDB(ctx, r.db).
		Preload("Items", orderByID).
		Where("active_owner = ?", ownerID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound(ownerID)
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

// toCartEntity GORM模型 → 领域实体
func toCartEntity(model *CartModel) *cart.Cart {
	c := &cart.Cart{
		ID:        model.ID,
		OwnerID:   model.OwnerID,
		Status:    cart.Status(model.Status),
		Products:  make([]cart.LineItem, 0, len(model.Items)),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	for _, item := range model.Items {
		c.Products = append(c.Products, cart.LineItem{
			ProductID: item.BookID,
			Quantity:  item.Quantity,
		})
	}
	return c
}
