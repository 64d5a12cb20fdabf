package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey 事务DB在context中的key
type txKey struct{}

// TxManager 仓储内部的事务边界
// 事务DB放在context里向下传递,仓储方法通过getDB取用;
// 嵌套调用时GORM自动使用Savepoint
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction fn返回error时回滚,否则提交
// 加购(取购物车+写明细)、追加/移除购买记录(校验用户+写子表)都在这里完成
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return getDB(ctx, m.db).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}
