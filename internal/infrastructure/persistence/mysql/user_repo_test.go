package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/user"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func TestUserRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo)
	require.NotEmpty(t, u.ID)

	t.Run("读取内嵌地址与职业", func(t *testing.T) {
		got, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", got.Email)
		assert.Equal(t, []string{"mathematician"}, got.Professions)
		assert.Equal(t, 12, got.Address.Number)
		assert.Empty(t, got.PurchaseHistory)
	})

	t.Run("更新", func(t *testing.T) {
		u.Age = 40
		u.Professions = []string{"writer", "analyst"}
		require.NoError(t, repo.Update(ctx, u))

		got, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, 40, got.Age)
		assert.Equal(t, []string{"writer", "analyst"}, got.Professions)
	})

	t.Run("分页", func(t *testing.T) {
		seedUser(t, repo)
		users, total, err := repo.List(ctx, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, users, 1)
	})

	t.Run("删除", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, u.ID))
		_, err := repo.FindByID(ctx, u.ID)
		assert.True(t, apperrors.IsNotFound(err))
		assert.True(t, apperrors.IsNotFound(repo.Delete(ctx, u.ID)))
	})
}

func TestUserRepository_PurchaseHistory(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo)
	hobbit := book.NewBook("B001", "The Hobbit", "img", decimal.RequireFromString("12.5"), book.CategoryFantasy, nil)
	emma := book.NewBook("B002", "Emma", "img", decimal.RequireFromString("7"), book.CategoryRomance, nil)

	var first, second *user.PurchaseEntry

	t.Run("追加记录保持插入顺序", func(t *testing.T) {
		first = user.NewPurchaseEntry(hobbit, time.Now())
		got, err := repo.PushPurchase(ctx, u.ID, first)
		require.NoError(t, err)
		require.NotEmpty(t, first.ID)

		second = user.NewPurchaseEntry(emma, time.Now())
		got, err = repo.PushPurchase(ctx, u.ID, second)
		require.NoError(t, err)

		require.Len(t, got.PurchaseHistory, 2)
		assert.Equal(t, first.ID, got.PurchaseHistory[0].ID)
		assert.Equal(t, "Emma", got.PurchaseHistory[1].Title)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("通过整体写回更新单条记录", func(t *testing.T) {
		current, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)

		price := decimal.RequireFromString("9.99")
		require.NoError(t, current.UpdatePurchase(first.ID, user.PurchasePatch{Price: &price}))
		require.NoError(t, repo.Update(ctx, current))

		got, err := repo.FindByID(ctx, u.ID)
		require.NoError(t, err)
		entry, ok := got.FindPurchase(first.ID)
		require.True(t, ok)
		assert.True(t, price.Equal(entry.Price))
		assert.Equal(t, "The Hobbit", entry.Title)
	})

	t.Run("移除记录", func(t *testing.T) {
		got, err := repo.PullPurchase(ctx, u.ID, first.ID)
		require.NoError(t, err)
		require.Len(t, got.PurchaseHistory, 1)
		assert.Equal(t, second.ID, got.PurchaseHistory[0].ID)
	})

	t.Run("移除不存在的记录静默成功", func(t *testing.T) {
		got, err := repo.PullPurchase(ctx, u.ID, "no-such-entry")
		require.NoError(t, err)
		assert.Len(t, got.PurchaseHistory, 1)
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := repo.PushPurchase(ctx, "missing", user.NewPurchaseEntry(emma, time.Now()))
		assert.True(t, apperrors.IsNotFound(err))

		_, err = repo.PullPurchase(ctx, "missing", second.ID)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
