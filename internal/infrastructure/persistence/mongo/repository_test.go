package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/bookshop/internal/domain/author"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// newTestDatabase 需要真实的MongoDB,未设置BOOKSHOP_TEST_MONGO_URI时跳过
func newTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("BOOKSHOP_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("未设置BOOKSHOP_TEST_MONGO_URI,跳过MongoDB集成测试")
	}

	ctx := context.Background()
	dbName := "bookshop_test_" + primitive.NewObjectID().Hex()
	db, disconnect, err := NewDatabase(ctx, config.MongoConfig{
		URI:      uri,
		Database: dbName,
		Timeout:  10 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = disconnect(context.Background())
	})
	return db
}

func TestMongoBookRepository(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	authors := NewAuthorRepository(db)
	repo := NewBookRepository(db)

	a := author.NewAuthor("Ursula", "Le Guin")
	require.NoError(t, authors.Create(ctx, a))

	for _, tc := range []struct {
		title string
		price string
	}{{"A", "30"}, {"B", "10"}, {"C", "20"}} {
		b := book.NewBook("X"+tc.title, tc.title, "img", decimal.RequireFromString(tc.price), book.CategoryFantasy, []string{a.ID})
		require.NoError(t, repo.Create(ctx, b))
	}

	p := book.ListParams{Sort: []book.SortField{{Field: book.FieldPrice}}}
	require.NoError(t, p.Normalize())
	books, total, err := repo.List(ctx, p)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, books, 3)
	assert.Equal(t, "B", books[0].Title)
	require.Len(t, books[0].Authors, 1)
	assert.Equal(t, "Le Guin", books[0].Authors[0].LastName)

	_, err = repo.FindByID(ctx, "not-an-id")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMongoUserRepository_PurchaseHistory(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	u := user.NewUser("Ada", "Lovelace", "ada@example.com", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), 34, nil, user.Address{})
	require.NoError(t, repo.Create(ctx, u))

	b := book.NewBook("B1", "Dune", "img", decimal.RequireFromString("9.5"), book.CategoryFantasy, nil)
	entry := user.NewPurchaseEntry(b, time.Now())
	got, err := repo.PushPurchase(ctx, u.ID, entry)
	require.NoError(t, err)
	require.Len(t, got.PurchaseHistory, 1)
	assert.Equal(t, entry.ID, got.PurchaseHistory[0].ID)

	got, err = repo.PullPurchase(ctx, u.ID, "65a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err, "移除不存在的记录静默成功")
	assert.Len(t, got.PurchaseHistory, 1)

	got, err = repo.PullPurchase(ctx, u.ID, entry.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PurchaseHistory)
}

func TestMongoCartRepository_ConcurrentAddItem(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := NewCartRepository(db)

	const workers = 10
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := repo.AddItem(gctx, "u1", "p1", 1)
			return err
		})
	}
	require.NoError(t, g.Wait())

	c, err := repo.FindActiveByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []cart.LineItem{{ProductID: "p1", Quantity: workers}}, c.Products)
}
