package purchase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookshop/internal/application/event"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

const tracerName = "purchase"

// AddPurchaseUseCase 新增购买记录
// 业务流程:
// 1. 查询图书,不存在返回NotFound(book)
// 2. 复制title/category/asin/price生成新记录,purchaseDate取当前时间
// 3. 原子$push追加到用户的购买记录,用户不存在返回NotFound(user)
// 4. 发布purchase.recorded事件
type AddPurchaseUseCase struct {
	userRepo  user.Repository
	bookRepo  book.Repository
	publisher mq.Publisher
	now       func() time.Time
}

// NewAddPurchaseUseCase 创建用例
func NewAddPurchaseUseCase(userRepo user.Repository, bookRepo book.Repository, publisher mq.Publisher) *AddPurchaseUseCase {
	return &AddPurchaseUseCase{
		userRepo:  userRepo,
		bookRepo:  bookRepo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Execute 执行新增,返回追加后的用户
func (uc *AddPurchaseUseCase) Execute(ctx context.Context, userID, bookID string) (_ *user.User, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "AddPurchase")
	defer func() {
		tracing.End(span, err)
		if err == nil {
			metrics.PurchaseEntriesTotal.WithLabelValues("add").Inc()
		}
	}()
	span.SetAttributes(attribute.String("user.id", userID), attribute.String("book.id", bookID))

	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	entry := user.NewPurchaseEntry(b, uc.now())
	u, err := uc.userRepo.PushPurchase(ctx, userID, entry)
	if err != nil {
		return nil, err
	}

	event.Publish(ctx, uc.publisher, event.TypePurchaseRecorded, event.PurchaseRecorded{
		UserID:  u.ID,
		EntryID: entry.ID,
		ASIN:    entry.ASIN,
		Title:   entry.Title,
		Price:   entry.Price.String(),
	})

	return u, nil
}
