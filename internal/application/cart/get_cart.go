package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/user"
)

// GetCartUseCase 查询用户当前的Active购物车
type GetCartUseCase struct {
	userRepo user.Repository
	cartRepo cart.Repository
}

// NewGetCartUseCase 创建用例
func NewGetCartUseCase(userRepo user.Repository, cartRepo cart.Repository) *GetCartUseCase {
	return &GetCartUseCase{userRepo: userRepo, cartRepo: cartRepo}
}

// Execute 用户不存在返回NotFound(user),没有Active购物车返回NotFound(cart)
func (uc *GetCartUseCase) Execute(ctx context.Context, userID string) (*cart.Cart, error) {
	if _, err := uc.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.cartRepo.FindActiveByOwner(ctx, userID)
}
