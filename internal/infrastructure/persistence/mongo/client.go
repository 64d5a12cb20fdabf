package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
)

// 集合名
const (
	collBooks   = "books"
	collAuthors = "authors"
	collUsers   = "users"
	collCarts   = "carts"
)

// NewDatabase 连接MongoDB并创建索引
// 设计说明:
// 1. 与mysql包实现同一组domain仓储接口,通过storage.driver切换
// 2. 启动时Ping一次,失败直接返回(快速失败)
// 3. 索引由EnsureIndexes幂等创建,购物车的并发正确性依赖其中的部分唯一索引
func NewDatabase(ctx context.Context, cfg config.MongoConfig) (*mongo.Database, func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("连接MongoDB失败: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("MongoDB连接测试失败: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	zap.L().Info("MongoDB连接成功", zap.String("database", cfg.Database))
	return db, client.Disconnect, nil
}

// EnsureIndexes 创建索引(重复执行无副作用)
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		collBooks: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "authors", Value: 1}}},
		},
		collUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		collCarts: {
			// 每个用户最多一个Active购物车
			{
				Keys: bson.D{{Key: "owner", Value: 1}},
				Options: options.Index().
					SetName("uk_carts_active_owner").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"status": "Active"}),
			},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("创建%s索引失败: %w", coll, err)
		}
	}
	return nil
}
