package cart

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookshop/internal/application/event"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// AddToCartUseCase 加购用例
// 业务流程:
// 1. 查询用户(不存在返回NotFound(user))
// 2. 查询图书(不存在返回NotFound(book))
// 3. 校验数量>=1
// 4. 仓储单次原子upsert:无Active购物车则创建,已有该书则累加数量,否则追加新行
// 5. 发布cart.item_added事件
//
// 设计说明:
// 不再先查购物车再决定插入或更新,并发加购由存储层唯一约束和条件更新保证只有一个购物车、一行明细
type AddToCartUseCase struct {
	userRepo  user.Repository
	bookRepo  book.Repository
	cartRepo  cart.Repository
	publisher mq.Publisher
}

// NewAddToCartUseCase 创建加购用例
func NewAddToCartUseCase(
	userRepo user.Repository,
	bookRepo book.Repository,
	cartRepo cart.Repository,
	publisher mq.Publisher,
) *AddToCartUseCase {
	return &AddToCartUseCase{
		userRepo:  userRepo,
		bookRepo:  bookRepo,
		cartRepo:  cartRepo,
		publisher: publisher,
	}
}

// AddToCartRequest 加购请求
type AddToCartRequest struct {
	UserID   string
	BookID   string
	Quantity int
}

// Execute 执行加购
func (uc *AddToCartUseCase) Execute(ctx context.Context, req AddToCartRequest) (_ *cart.Cart, err error) {
	ctx, span := tracing.StartSpan(ctx, "cart", "AddToCart")
	defer func() {
		tracing.End(span, err)
		metrics.CartItemsAddedTotal.WithLabelValues(metrics.Result(err)).Inc()
	}()
	span.SetAttributes(
		attribute.String("cart.user_id", req.UserID),
		attribute.String("cart.book_id", req.BookID),
		attribute.Int("cart.quantity", req.Quantity),
	)

	if _, err = uc.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, err
	}
	if _, err = uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}
	if err = cart.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	c, err := uc.cartRepo.AddItem(ctx, req.UserID, req.BookID, req.Quantity)
	if err != nil {
		return nil, err
	}

	line, _ := c.Line(req.BookID)
	event.Publish(ctx, uc.publisher, event.TypeCartItemAdded, event.CartItemAdded{
		CartID:   c.ID,
		UserID:   req.UserID,
		BookID:   req.BookID,
		Quantity: req.Quantity,
		Total:    line.Quantity,
	})

	return c, nil
}
