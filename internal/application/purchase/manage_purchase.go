package purchase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// ListPurchasesUseCase 查询用户全部购买记录(按追加顺序)
type ListPurchasesUseCase struct {
	userRepo user.Repository
}

func NewListPurchasesUseCase(userRepo user.Repository) *ListPurchasesUseCase {
	return &ListPurchasesUseCase{userRepo: userRepo}
}

func (uc *ListPurchasesUseCase) Execute(ctx context.Context, userID string) ([]user.PurchaseEntry, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.PurchaseHistory == nil {
		return []user.PurchaseEntry{}, nil
	}
	return u.PurchaseHistory, nil
}

// GetPurchaseUseCase 查询单条购买记录
type GetPurchaseUseCase struct {
	userRepo user.Repository
}

func NewGetPurchaseUseCase(userRepo user.Repository) *GetPurchaseUseCase {
	return &GetPurchaseUseCase{userRepo: userRepo}
}

// Execute 加载完整用户后线性查找
func (uc *GetPurchaseUseCase) Execute(ctx context.Context, userID, entryID string) (*user.PurchaseEntry, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	entry, ok := u.FindPurchase(entryID)
	if !ok {
		return nil, user.ErrPurchaseNotFound(entryID)
	}
	return entry, nil
}

// UpdatePurchaseUseCase 修改购买记录
// 读取整个用户 → 就地合并 → 整体写回
// 并发修改同一用户时后写覆盖先写
type UpdatePurchaseUseCase struct {
	userRepo user.Repository
}

func NewUpdatePurchaseUseCase(userRepo user.Repository) *UpdatePurchaseUseCase {
	return &UpdatePurchaseUseCase{userRepo: userRepo}
}

func (uc *UpdatePurchaseUseCase) Execute(ctx context.Context, userID, entryID string, patch user.PurchasePatch) (_ *user.User, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdatePurchase")
	defer func() {
		tracing.End(span, err)
		if err == nil {
			metrics.PurchaseEntriesTotal.WithLabelValues("update").Inc()
		}
	}()
	span.SetAttributes(attribute.String("user.id", userID), attribute.String("purchase.id", entryID))

	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err = u.UpdatePurchase(entryID, patch); err != nil {
		return nil, err
	}
	if err = uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RemovePurchaseUseCase 移除购买记录
// 注意:记录不存在时不报错,原样返回用户;只有用户不存在才返回NotFound
type RemovePurchaseUseCase struct {
	userRepo user.Repository
}

func NewRemovePurchaseUseCase(userRepo user.Repository) *RemovePurchaseUseCase {
	return &RemovePurchaseUseCase{userRepo: userRepo}
}

func (uc *RemovePurchaseUseCase) Execute(ctx context.Context, userID, entryID string) (_ *user.User, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "RemovePurchase")
	defer func() {
		tracing.End(span, err)
		if err == nil {
			metrics.PurchaseEntriesTotal.WithLabelValues("remove").Inc()
		}
	}()
	span.SetAttributes(attribute.String("user.id", userID), attribute.String("purchase.id", entryID))

	return uc.userRepo.PullPurchase(ctx, userID, entryID)
}
