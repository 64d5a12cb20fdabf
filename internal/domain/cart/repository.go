package cart

import "context"

// Repository 购物车仓储接口
type Repository interface {
	// AddItem 加购(单次条件原子upsert)
	// - 用户没有Active购物车时创建
	// - 购物车已有该书时数量累加,否则追加新行
	// 并发调用同一(owner, product)时最终只有一个购物车、一行明细
	AddItem(ctx context.Context, ownerID, productID string, quantity int) (*Cart, error)

	// FindActiveByOwner 查询用户的Active购物车
	FindActiveByOwner(ctx context.Context, ownerID string) (*Cart, error)
}
