package user

import (
	"context"
)

// Repository 用户仓储接口（依赖倒置原则）
// 设计说明：
// 1. 查询返回的User总是带完整的PurchaseHistory(按插入顺序)
// 2. PushPurchase/PullPurchase是单次原子操作,对应文档库的$push/$pull
type Repository interface {
	// Create 创建用户
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	FindByID(ctx context.Context, id string) (*User, error)

	// Update 整体写回用户(含购买记录的字段修改)
	Update(ctx context.Context, user *User) error

	// Delete 删除用户
	Delete(ctx context.Context, id string) error

	// List 分页查询用户
	List(ctx context.Context, skip, limit int) ([]*User, int64, error)

	// PushPurchase 追加购买记录,生成entry.ID,返回追加后的用户
	// 用户不存在返回NotFound(user)
	PushPurchase(ctx context.Context, userID string, entry *PurchaseEntry) (*User, error)

	// PullPurchase 按ID移除购买记录,返回移除后的用户
	// 用户不存在返回NotFound(user);记录不存在时静默成功
	PullPurchase(ctx context.Context, userID, entryID string) (*User, error)
}
