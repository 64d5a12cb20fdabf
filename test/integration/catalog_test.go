package integration

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookLifecycle(t *testing.T) {
	base := baseURL(t)

	authorID := CreateAuthor(t, base, "Frank", "Herbert")
	bookID := CreateBook(t, base, "Dune", "9.99", "fantasy", authorID)

	t.Run("详情展开作者", func(t *testing.T) {
		resp := Do(t, http.MethodGet, base+"/books/"+bookID, nil)
		require.Equal(t, http.StatusOK, resp.Status)

		var b BookData
		Decode(t, resp, &b)
		assert.Equal(t, "Dune", b.Title)
		assert.Equal(t, "9.99", b.Price.String())
		require.Len(t, b.Authors, 1)
		assert.Equal(t, "Herbert", b.Authors[0].LastName)
	})

	t.Run("部分更新", func(t *testing.T) {
		resp := Do(t, http.MethodPut, base+"/books/"+bookID, map[string]interface{}{"title": "Dune Messiah"})
		require.Equal(t, http.StatusOK, resp.Status, resp.Message)

		var b BookData
		Decode(t, resp, &b)
		assert.Equal(t, "Dune Messiah", b.Title)
		assert.Equal(t, "fantasy", b.Category)
	})

	t.Run("无效分类", func(t *testing.T) {
		resp := Do(t, http.MethodPut, base+"/books/"+bookID, map[string]interface{}{"category": "poetry"})
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})

	t.Run("引用不存在的作者", func(t *testing.T) {
		resp := Do(t, http.MethodPost, base+"/books", map[string]interface{}{
			"asin":     UniqueASIN(),
			"title":    "Ghost",
			"img":      "https://img.example.com/ghost.jpg",
			"price":    1,
			"category": "horror",
			"authors":  []string{"0190f7a2-0000-7000-8000-000000000000"},
		})
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})

	t.Run("删除后不存在", func(t *testing.T) {
		resp := Do(t, http.MethodDelete, base+"/books/"+bookID, nil)
		require.Equal(t, http.StatusNoContent, resp.Status)

		resp = Do(t, http.MethodGet, base+"/books/"+bookID, nil)
		assert.Equal(t, http.StatusNotFound, resp.Status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "book", resp.Error.Resource)
		assert.Equal(t, bookID, resp.Error.ResourceID)
	})
}

func TestListBooks(t *testing.T) {
	base := baseURL(t)

	// 标题带唯一后缀,按标题过滤只看到本次创建的数据
	asin := UniqueASIN()
	titles := []string{"List-A-" + asin, "List-B-" + asin, "List-C-" + asin}
	CreateBook(t, base, titles[0], "5", "history")
	CreateBook(t, base, titles[1], "15", "romance")
	CreateBook(t, base, titles[2], "25", "history")

	list := func(t *testing.T, rawQuery string) *BookListData {
		t.Helper()
		resp := Do(t, http.MethodGet, base+"/books?"+rawQuery, nil)
		require.Equal(t, http.StatusOK, resp.Status, resp.Message)

		var data BookListData
		Decode(t, resp, &data)
		return &data
	}
	in := "title=" + url.QueryEscape(titles[0]+","+titles[1]+","+titles[2])

	t.Run("默认分页", func(t *testing.T) {
		data := list(t, in)
		assert.Equal(t, int64(3), data.Total)
		assert.Equal(t, 0, data.Skip)
		assert.Equal(t, 10, data.Limit)
	})

	t.Run("过滤排序分页", func(t *testing.T) {
		data := list(t, in+"&price>10&sort=-price&limit=1")
		assert.Equal(t, int64(2), data.Total)
		require.Len(t, data.Books, 1)
		assert.Equal(t, titles[2], data.Books[0].Title)

		data = list(t, in+"&price>10&sort=-price&skip=1&limit=1")
		require.Len(t, data.Books, 1)
		assert.Equal(t, titles[1], data.Books[0].Title)
	})

	t.Run("无效参数", func(t *testing.T) {
		resp := Do(t, http.MethodGet, base+"/books?limit=-1", nil)
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})
}
