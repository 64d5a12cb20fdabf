package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/author"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/user"
)

// newTestDB 每个测试一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedAuthor(t *testing.T, repo author.Repository, first, last string) *author.Author {
	t.Helper()
	a := author.NewAuthor(first, last)
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func seedBook(t *testing.T, repo book.Repository, asin, title string, price string, category book.Category, authorIDs ...string) *book.Book {
	t.Helper()
	b := book.NewBook(asin, title, "https://img.example.com/"+asin+".jpg",
		decimal.RequireFromString(price), category, authorIDs)
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func seedUser(t *testing.T, repo user.Repository) *user.User {
	t.Helper()
	u := user.NewUser("Ada", "Lovelace", "ada@example.com",
		time.Date(1990, 12, 10, 0, 0, 0, 0, time.UTC), 34,
		[]string{"mathematician"}, user.Address{Street: "St James's Square", Number: 12})
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}
