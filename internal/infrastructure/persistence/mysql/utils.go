package mysql

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// newID 生成UUIDv7字符串ID
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// getDB 从context获取事务DB,如果没有则使用默认DB
// 教学要点:事务传递机制,Repository内部所有查询都必须经过它
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
