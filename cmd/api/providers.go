package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/author"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mongo"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// Repositories 按storage.driver选出的一组仓储实现
// 四个仓储必须来自同一个存储,购物车/购买记录引用的用户和图书ID才一致
type Repositories struct {
	Authors author.Repository
	Books   book.Repository
	Users   user.Repository
	Carts   cart.Repository
}

// provideRepositories 连接存储并创建仓储
// 启用缓存时图书仓储外面再包一层Redis Cache-Aside
func provideRepositories(ctx context.Context, cfg *config.Config) (*Repositories, func(), error) {
	var (
		repos   *Repositories
		cleanup func()
		err     error
	)

	switch cfg.Storage.Driver {
	case config.DriverMySQL:
		repos, cleanup, err = gormRepositories(mysql.NewDB(cfg))
	case config.DriverSQLite:
		repos, cleanup, err = gormRepositories(mysql.NewSQLiteDB(cfg.Storage.SQLitePath))
	case config.DriverMongo:
		repos, cleanup, err = mongoRepositories(ctx, cfg)
	default:
		err = fmt.Errorf("无效的存储驱动: %s", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	zap.L().Info("存储初始化完成", zap.String("driver", cfg.Storage.Driver))

	if !cfg.Cache.Enabled {
		return repos, cleanup, nil
	}

	client, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		// 缓存不可用不影响启动,直接读存储
		zap.L().Warn("Redis不可用,图书缓存已禁用", zap.Error(err))
		return repos, cleanup, nil
	}
	repos.Books = redis.NewCachedBookRepository(repos.Books, repos.Authors, client, cfg.Cache.DetailTTL)

	return repos, func() {
		_ = client.Close()
		cleanup()
	}, nil
}

func gormRepositories(db *gorm.DB, err error) (*Repositories, func(), error) {
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return &Repositories{
		Authors: mysql.NewAuthorRepository(db),
		Books:   mysql.NewBookRepository(db),
		Users:   mysql.NewUserRepository(db),
		Carts:   mysql.NewCartRepository(db),
	}, cleanup, nil
}

func mongoRepositories(ctx context.Context, cfg *config.Config) (*Repositories, func(), error) {
	db, disconnect, err := mongo.NewDatabase(ctx, cfg.Mongo)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := disconnect(context.Background()); err != nil {
			zap.L().Warn("断开MongoDB失败", zap.Error(err))
		}
	}
	return &Repositories{
		Authors: mongo.NewAuthorRepository(db),
		Books:   mongo.NewBookRepository(db),
		Users:   mongo.NewUserRepository(db),
		Carts:   mongo.NewCartRepository(db),
	}, cleanup, nil
}

// providePublisher 启用mq时连接RabbitMQ,否则丢弃事件
func providePublisher(cfg *config.Config) (mq.Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		return mq.NopPublisher{}, func() {}, nil
	}

	p, err := mq.NewRabbitPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		return nil, nil, err
	}
	zap.L().Info("RabbitMQ连接成功", zap.String("exchange", cfg.MQ.Exchange))

	return p, func() {
		if err := p.Close(); err != nil {
			zap.L().Warn("关闭RabbitMQ失败", zap.Error(err))
		}
	}, nil
}
