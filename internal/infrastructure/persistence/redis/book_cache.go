package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/internal/domain/author"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// CachedBookRepository 图书详情缓存(Cache-Aside)
//
// 教学要点：
//  1. 读:先查缓存,未命中回源仓储并回填
//  2. 写:先写仓储,成功后删除缓存(不直接更新缓存,避免并发写导致脏数据)
//  3. 缓存只是加速手段:Redis异常或熔断时直接回源,不影响业务结果
//  4. 列表查询条件组合太多,不缓存
//  5. 缓存里只存图书自身字段和AuthorIDs,作者姓名每次读取时按ID展开,
//     作者改名或删除后不需要失效图书缓存
type CachedBookRepository struct {
	book.Repository

	authors author.Repository
	client  *redis.Client
	ttl     time.Duration
	breaker *circuitbreaker.Breaker
}

// NewCachedBookRepository 用缓存装饰图书仓储
func NewCachedBookRepository(repo book.Repository, authors author.Repository, client *redis.Client, ttl time.Duration) *CachedBookRepository {
	breaker := circuitbreaker.New(circuitbreaker.Settings{
		Name:    "redis-book-cache",
		Timeout: 30 * time.Second,
		// 缓存未命中不算故障
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			zap.L().Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &CachedBookRepository{
		Repository: repo,
		authors:    authors,
		client:     client,
		ttl:        ttl,
		breaker:    breaker,
	}
}

func bookKey(id string) string {
	return fmt.Sprintf("book:detail:%s", id)
}

// FindByID 查询图书详情
func (r *CachedBookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	if b, ok := r.get(ctx, id); ok {
		metrics.CacheRequests.WithLabelValues("book", "hit").Inc()
		if err := r.populate(ctx, b); err != nil {
			return nil, err
		}
		return b, nil
	}
	metrics.CacheRequests.WithLabelValues("book", "miss").Inc()

	b, err := r.Repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.set(ctx, b)
	return b, nil
}

// Update 更新后删除缓存
func (r *CachedBookRepository) Update(ctx context.Context, b *book.Book) error {
	if err := r.Repository.Update(ctx, b); err != nil {
		return err
	}
	r.invalidate(ctx, b.ID)
	return nil
}

// Delete 删除后删除缓存
func (r *CachedBookRepository) Delete(ctx context.Context, id string) error {
	if err := r.Repository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// get 读缓存,任何异常都按未命中处理
func (r *CachedBookRepository) get(ctx context.Context, id string) (*book.Book, bool) {
	var val []byte
	err := r.breaker.Execute(func() error {
		var err error
		val, err = r.client.Get(ctx, bookKey(id)).Bytes()
		return err
	})
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Debug("读取图书缓存失败", zap.String("book_id", id), zap.Error(err))
		}
		return nil, false
	}

	var b book.Book
	if err := json.Unmarshal(val, &b); err != nil {
		zap.L().Warn("图书缓存反序列化失败", zap.String("book_id", id), zap.Error(err))
		return nil, false
	}
	return &b, true
}

func (r *CachedBookRepository) set(ctx context.Context, b *book.Book) {
	cached := *b
	cached.Authors = nil
	val, err := json.Marshal(&cached)
	if err != nil {
		return
	}
	err = r.breaker.Execute(func() error {
		return r.client.Set(ctx, bookKey(b.ID), val, r.ttl).Err()
	})
	if err != nil {
		zap.L().Debug("写入图书缓存失败", zap.String("book_id", b.ID), zap.Error(err))
	}
}

// populate 按AuthorIDs顺序展开作者,已删除的作者跳过(与仓储回源结果一致)
func (r *CachedBookRepository) populate(ctx context.Context, b *book.Book) error {
	b.Authors = nil
	if len(b.AuthorIDs) == 0 {
		return nil
	}

	found, err := r.authors.FindByIDs(ctx, b.AuthorIDs)
	if err != nil {
		return err
	}
	byID := make(map[string]*author.Author, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}
	for _, id := range b.AuthorIDs {
		if a, ok := byID[id]; ok {
			b.Authors = append(b.Authors, book.AuthorRef{ID: a.ID, FirstName: a.FirstName, LastName: a.LastName})
		}
	}
	return nil
}

// invalidate 删除缓存失败只记日志,依赖TTL兜底
func (r *CachedBookRepository) invalidate(ctx context.Context, id string) {
	err := r.breaker.Execute(func() error {
		return r.client.Del(ctx, bookKey(id)).Err()
	})
	if err != nil {
		zap.L().Warn("删除图书缓存失败", zap.String("book_id", id), zap.Error(err))
	}
}
