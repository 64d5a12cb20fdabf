package mysql

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func intPtr(v int) *int { return &v }

func titles(books []*book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestBookRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	authors := NewAuthorRepository(db)
	repo := NewBookRepository(db)
	ctx := context.Background()

	tolkien := seedAuthor(t, authors, "J.R.R.", "Tolkien")
	lewis := seedAuthor(t, authors, "C.S.", "Lewis")

	t.Run("创建并展开作者", func(t *testing.T) {
		b := seedBook(t, repo, "B001", "The Hobbit", "12.50", book.CategoryFantasy, lewis.ID, tolkien.ID)
		require.NotEmpty(t, b.ID)

		got, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "The Hobbit", got.Title)
		assert.True(t, decimal.RequireFromString("12.5").Equal(got.Price))
		assert.Equal(t, []string{lewis.ID, tolkien.ID}, got.AuthorIDs, "保持请求中的作者顺序")
		require.Len(t, got.Authors, 2)
		assert.Equal(t, "C.S.", got.Authors[0].FirstName)
		assert.Equal(t, "Tolkien", got.Authors[1].LastName)
	})

	t.Run("更新字段并替换作者", func(t *testing.T) {
		b := seedBook(t, repo, "B002", "Dracula", "9.99", book.CategoryHorror, tolkien.ID)

		b.Title = "Dracula (Annotated)"
		b.Price = decimal.Zero
		b.AuthorIDs = []string{lewis.ID}
		require.NoError(t, repo.Update(ctx, b))

		got, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dracula (Annotated)", got.Title)
		assert.True(t, got.Price.IsZero(), "价格0也要写入")
		assert.Equal(t, []string{lewis.ID}, got.AuthorIDs)
	})

	t.Run("删除后查询返回NotFound", func(t *testing.T) {
		b := seedBook(t, repo, "B003", "Emma", "5", book.CategoryRomance)
		require.NoError(t, repo.Delete(ctx, b.ID))

		_, err := repo.FindByID(ctx, b.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Equal(t, "Book with id "+b.ID+" not found!", apperrors.GetAppError(err).Message)

		err = repo.Delete(ctx, b.ID)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("更新不存在的图书", func(t *testing.T) {
		ghost := book.NewBook("X", "Ghost", "img", decimal.NewFromInt(1), book.CategoryHistory, nil)
		ghost.ID = "missing"
		err := repo.Update(ctx, ghost)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("作者删除后展开时跳过", func(t *testing.T) {
		gone := seedAuthor(t, authors, "Bram", "Stoker")
		b := seedBook(t, repo, "B004", "The Lair", "3", book.CategoryHorror, gone.ID, tolkien.ID)
		require.NoError(t, authors.Delete(ctx, gone.ID))

		got, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{gone.ID, tolkien.ID}, got.AuthorIDs)
		require.Len(t, got.Authors, 1)
		assert.Equal(t, tolkien.ID, got.Authors[0].ID)
	})
}

func TestBookRepository_List(t *testing.T) {
	db := newTestDB(t)
	authors := NewAuthorRepository(db)
	repo := NewBookRepository(db)
	ctx := context.Background()

	a := seedAuthor(t, authors, "Mary", "Shelley")
	for i, tc := range []struct {
		title    string
		price    string
		category book.Category
	}{
		{"A", "30", book.CategoryHistory},
		{"B", "10", book.CategoryFantasy},
		{"C", "20", book.CategoryFantasy},
		{"D", "15", book.CategoryHorror},
		{"E", "25", book.CategoryRomance},
	} {
		seedBook(t, repo, "ASIN"+string(rune('0'+i)), tc.title, tc.price, tc.category, a.ID)
	}

	list := func(t *testing.T, p book.ListParams) ([]*book.Book, int64) {
		t.Helper()
		require.NoError(t, p.Normalize())
		books, total, err := repo.List(ctx, p)
		require.NoError(t, err)
		return books, total
	}

	t.Run("默认分页", func(t *testing.T) {
		books, total := list(t, book.ListParams{})
		assert.EqualValues(t, 5, total)
		assert.Len(t, books, 5)
		require.Len(t, books[0].Authors, 1)
		assert.Equal(t, "Shelley", books[0].Authors[0].LastName)
	})

	t.Run("等值过滤", func(t *testing.T) {
		books, total := list(t, book.ListParams{
			Conditions: []book.Condition{{Field: book.FieldCategory, Op: book.OpEq, RawValues: []string{"fantasy"}}},
			Sort:       []book.SortField{{Field: book.FieldTitle}},
		})
		assert.EqualValues(t, 2, total)
		assert.Equal(t, []string{"B", "C"}, titles(books))
	})

	t.Run("in与不等于", func(t *testing.T) {
		books, _ := list(t, book.ListParams{
			Conditions: []book.Condition{
				{Field: book.FieldCategory, Op: book.OpIn, RawValues: []string{"fantasy", "horror"}},
				{Field: book.FieldTitle, Op: book.OpNe, RawValues: []string{"C"}},
			},
			Sort: []book.SortField{{Field: book.FieldTitle}},
		})
		assert.Equal(t, []string{"B", "D"}, titles(books))
	})

	t.Run("价格区间按数值比较", func(t *testing.T) {
		books, total := list(t, book.ListParams{
			Conditions: []book.Condition{
				{Field: book.FieldPrice, Op: book.OpGte, RawValues: []string{"15"}},
				{Field: book.FieldPrice, Op: book.OpLt, RawValues: []string{"30"}},
			},
			Sort: []book.SortField{{Field: book.FieldPrice, Desc: true}},
		})
		assert.EqualValues(t, 3, total)
		assert.Equal(t, []string{"E", "C", "D"}, titles(books))
	})

	t.Run("先排序再skip再limit,total不受分页影响", func(t *testing.T) {
		books, total := list(t, book.ListParams{
			Sort:  []book.SortField{{Field: book.FieldPrice}},
			Skip:  intPtr(1),
			Limit: intPtr(2),
		})
		assert.EqualValues(t, 5, total)
		assert.Equal(t, []string{"D", "C"}, titles(books))
	})

	t.Run("skip超出范围返回空列表", func(t *testing.T) {
		books, total := list(t, book.ListParams{Skip: intPtr(10)})
		assert.EqualValues(t, 5, total)
		assert.Empty(t, books)
	})
}
