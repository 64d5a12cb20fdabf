package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauthor "github.com/xiebiao/bookshop/internal/application/author"
	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	apppurchase "github.com/xiebiao/bookshop/internal/application/purchase"
	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/domain/author"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/mq"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope 统一响应结构
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Resource   string   `json:"resource"`
		ResourceID string   `json:"resource_id"`
		Fields     []string `json:"fields"`
	} `json:"error"`
}

type testServer struct {
	t *testing.T
	r *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := mysql.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	authorRepo := mysql.NewAuthorRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	userRepo := mysql.NewUserRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	publisher := mq.NopPublisher{}

	authorService := author.NewService(authorRepo)
	bookService := book.NewService(bookRepo, authorRepo)
	userService := user.NewService(userRepo)

	h := &Handlers{
		Book: handler.NewBookHandler(
			appbook.NewCreateBookUseCase(bookService),
			appbook.NewListBooksUseCase(bookService),
			appbook.NewGetBookUseCase(bookService),
			appbook.NewUpdateBookUseCase(bookService),
			appbook.NewDeleteBookUseCase(bookService),
		),
		Author: handler.NewAuthorHandler(
			appauthor.NewCreateAuthorUseCase(authorService),
			appauthor.NewListAuthorsUseCase(authorService),
			appauthor.NewGetAuthorUseCase(authorService),
			appauthor.NewUpdateAuthorUseCase(authorService),
			appauthor.NewDeleteAuthorUseCase(authorService),
		),
		User: handler.NewUserHandler(
			appuser.NewCreateUserUseCase(userService),
			appuser.NewListUsersUseCase(userService),
			appuser.NewGetUserUseCase(userService),
			appuser.NewUpdateUserUseCase(userService),
			appuser.NewDeleteUserUseCase(userService),
		),
		Cart: handler.NewCartHandler(
			appcart.NewAddToCartUseCase(userRepo, bookRepo, cartRepo, publisher),
			appcart.NewGetCartUseCase(userRepo, cartRepo),
		),
		Purchase: handler.NewPurchaseHandler(
			apppurchase.NewAddPurchaseUseCase(userRepo, bookRepo, publisher),
			apppurchase.NewListPurchasesUseCase(userRepo),
			apppurchase.NewGetPurchaseUseCase(userRepo),
			apppurchase.NewUpdatePurchaseUseCase(userRepo),
			apppurchase.NewRemovePurchaseUseCase(userRepo),
		),
	}

	cfg := &config.Config{
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	return &testServer{t: t, r: New(cfg, h)}
}

func (s *testServer) do(method, path string, body interface{}) (*httptest.ResponseRecorder, *envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)

	if w.Code == http.StatusNoContent || w.Body.Len() == 0 {
		return w, nil
	}
	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, &env
}

func (s *testServer) create(path string, body interface{}) string {
	s.t.Helper()
	w, env := s.do(http.MethodPost, path, body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		ID string `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(s.t, data.ID)
	return data.ID
}

func decode(t *testing.T, env *envelope, v interface{}) {
	t.Helper()
	require.NotNil(t, env)
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func validUser() map[string]interface{} {
	return map[string]interface{}{
		"firstName":   "Ada",
		"lastName":    "Lovelace",
		"email":       "ada@example.com",
		"dateOfBirth": "1994-03-01",
		"age":         30,
		"professions": []string{"mathematician"},
		"address":     map[string]interface{}{"street": "Main", "number": 1},
	}
}

func bookBody(asin, title string, price float64, category string, authors ...string) map[string]interface{} {
	return map[string]interface{}{
		"asin":     asin,
		"title":    title,
		"img":      "https://img.example.com/" + asin + ".jpg",
		"price":    price,
		"category": category,
		"authors":  authors,
	}
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)

	// /metrics是Prometheus文本格式,不走统一响应
	w = httptest.NewRecorder()
	s.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bookshop_http_requests_total")
}

func TestBooksAPI(t *testing.T) {
	s := newTestServer(t)
	authorID := s.create("/authors", map[string]string{"firstName": "Frank", "lastName": "Herbert"})

	t.Run("创建并查询图书", func(t *testing.T) {
		id := s.create("/books", bookBody("X1", "Dune", 9.99, "fantasy", authorID))

		w, env := s.do(http.MethodGet, "/books/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got struct {
			ASIN     string      `json:"asin"`
			Price    json.Number `json:"price"`
			Category string      `json:"category"`
			Authors  []struct {
				ID        string `json:"id"`
				FirstName string `json:"firstName"`
				LastName  string `json:"lastName"`
			} `json:"authors"`
		}
		decode(t, env, &got)
		assert.Equal(t, "X1", got.ASIN)
		assert.Equal(t, "9.99", got.Price.String())
		require.Len(t, got.Authors, 1)
		assert.Equal(t, authorID, got.Authors[0].ID)
		assert.Equal(t, "Herbert", got.Authors[0].LastName)
	})

	t.Run("缺少必填字段", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/books", map[string]interface{}{"asin": "X2"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
		assert.Subset(t, env.Error.Fields, []string{"title", "img", "price", "category"})
	})

	t.Run("无效分类", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/books", bookBody("X3", "Bad", 1, "poetry"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"category"}, env.Error.Fields)
	})

	t.Run("作者不存在", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/books", bookBody("X4", "Orphan", 1, "history", "missing-author"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"authors"}, env.Error.Fields)
	})

	t.Run("更新与删除", func(t *testing.T) {
		id := s.create("/books", bookBody("X5", "Emma", 5, "romance"))

		w, env := s.do(http.MethodPut, "/books/"+id, map[string]interface{}{"price": 7.5})
		require.Equal(t, http.StatusOK, w.Code)
		var got struct {
			Title string      `json:"title"`
			Price json.Number `json:"price"`
		}
		decode(t, env, &got)
		assert.Equal(t, "Emma", got.Title)
		assert.Equal(t, "7.5", got.Price.String())

		w, _ = s.do(http.MethodDelete, "/books/"+id, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, env = s.do(http.MethodGet, "/books/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperrors.ErrCodeBookNotFound, env.Code)
		assert.Equal(t, fmt.Sprintf("Book with id %s not found!", id), env.Message)

		w, _ = s.do(http.MethodDelete, "/books/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListBooksAPI(t *testing.T) {
	s := newTestServer(t)
	s.create("/books", bookBody("A1", "Alpha", 5, "history"))
	s.create("/books", bookBody("A2", "Bravo", 15, "fantasy"))
	s.create("/books", bookBody("A3", "Charlie", 25, "fantasy"))
	s.create("/books", bookBody("A4", "Delta", 35, "horror"))

	type listData struct {
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
		Skip       int   `json:"skip"`
		Limit      int   `json:"limit"`
		Links      struct {
			First string `json:"first"`
			Prev  string `json:"prev"`
			Next  string `json:"next"`
			Last  string `json:"last"`
		} `json:"links"`
		Books []struct {
			Title string `json:"title"`
		} `json:"books"`
	}
	titles := func(d listData) []string {
		out := make([]string, 0, len(d.Books))
		for _, b := range d.Books {
			out = append(out, b.Title)
		}
		return out
	}

	t.Run("默认分页", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/books", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var d listData
		decode(t, env, &d)
		assert.Equal(t, int64(4), d.Total)
		assert.Equal(t, 0, d.Skip)
		assert.Equal(t, 10, d.Limit)
		assert.Equal(t, 1, d.TotalPages)
		assert.Len(t, d.Books, 4)
	})

	t.Run("过滤排序分页", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/books?limit=1&price%3E=10&sort=-price&skip=1", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var d listData
		decode(t, env, &d)
		assert.Equal(t, int64(3), d.Total, "total不受分页影响")
		assert.Equal(t, 3, d.TotalPages)
		assert.Equal(t, []string{"Charlie"}, titles(d))
		assert.Equal(t, "/books?price%3E=10&sort=-price&skip=0&limit=1", d.Links.Prev)
		assert.Equal(t, "/books?price%3E=10&sort=-price&skip=2&limit=1", d.Links.Next)
		assert.Equal(t, "/books?price%3E=10&sort=-price&skip=2&limit=1", d.Links.Last)
	})

	t.Run("多值与不等于", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/books?category=fantasy,horror&title!=Bravo&sort=title", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var d listData
		decode(t, env, &d)
		assert.Equal(t, []string{"Charlie", "Delta"}, titles(d))
	})

	t.Run("非法参数", func(t *testing.T) {
		for _, q := range []string{"limit=0", "limit=101", "skip=-1", "limit=abc", "isbn=1", "sort=img", "price>abc"} {
			w, env := s.do(http.MethodGet, "/books?"+q, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, q)
			assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code, q)
		}
	})
}

func TestUsersAPI(t *testing.T) {
	s := newTestServer(t)

	t.Run("创建查询删除", func(t *testing.T) {
		id := s.create("/users", validUser())

		w, env := s.do(http.MethodGet, "/users/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got struct {
			Email           string        `json:"email"`
			DateOfBirth     string        `json:"dateOfBirth"`
			PurchaseHistory []interface{} `json:"purchaseHistory"`
		}
		decode(t, env, &got)
		assert.Equal(t, "ada@example.com", got.Email)
		assert.Equal(t, "1994-03-01", got.DateOfBirth)
		assert.NotNil(t, got.PurchaseHistory)

		w, _ = s.do(http.MethodDelete, "/users/"+id, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, env = s.do(http.MethodGet, "/users/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperrors.ResourceUser, env.Error.Resource)
		assert.Equal(t, id, env.Error.ResourceID)
	})

	t.Run("年龄范围", func(t *testing.T) {
		for _, age := range []int{17, 66} {
			body := validUser()
			body["age"] = age
			w, env := s.do(http.MethodPost, "/users", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, []string{"age"}, env.Error.Fields)
		}
	})

	t.Run("邮箱格式", func(t *testing.T) {
		body := validUser()
		body["email"] = "not-an-email"
		w, env := s.do(http.MethodPost, "/users", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"email"}, env.Error.Fields)
	})

	t.Run("部分更新后重新校验", func(t *testing.T) {
		id := s.create("/users", validUser())

		w, _ := s.do(http.MethodPut, "/users/"+id, map[string]interface{}{"lastName": "Byron"})
		assert.Equal(t, http.StatusOK, w.Code)

		w, env := s.do(http.MethodPut, "/users/"+id, map[string]interface{}{"age": 70})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"age"}, env.Error.Fields)
	})
}

// 用户U(30岁)和图书B(asin X1, 9.99, fantasy):
// 加购2本 → 再加购3本 → 同一购物车一行5本;新增购买记录复制图书快照
func TestCartAndPurchaseScenario(t *testing.T) {
	s := newTestServer(t)
	userID := s.create("/users", validUser())
	bookID := s.create("/books", bookBody("X1", "Dune", 9.99, "fantasy"))

	type cartData struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		Products []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"products"`
	}

	w, env := s.do(http.MethodGet, "/users/"+userID+"/cart", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ResourceCart, env.Error.Resource)

	w, env = s.do(http.MethodPost, "/users/"+userID+"/cart", map[string]interface{}{"bookId": bookID, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var first cartData
	decode(t, env, &first)
	assert.Equal(t, "Active", first.Status)
	require.Len(t, first.Products, 1)
	assert.Equal(t, 2, first.Products[0].Quantity)

	w, env = s.do(http.MethodPost, "/users/"+userID+"/cart", map[string]interface{}{"bookId": bookID, "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	var second cartData
	decode(t, env, &second)
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, second.Products, 1)
	assert.Equal(t, bookID, second.Products[0].ProductID)
	assert.Equal(t, 5, second.Products[0].Quantity)

	w, env = s.do(http.MethodPost, "/users/"+userID+"/cart", map[string]interface{}{"bookId": bookID, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"quantity"}, env.Error.Fields)

	w, env = s.do(http.MethodPost, "/users/"+userID+"/cart", map[string]interface{}{"bookId": "missing", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ResourceBook, env.Error.Resource)
	assert.Equal(t, "missing", env.Error.ResourceID)

	// 用户和图书先于数量检查
	w, env = s.do(http.MethodPost, "/users/nobody/cart", map[string]interface{}{"bookId": bookID, "quantity": 0})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ResourceUser, env.Error.Resource)

	w, env = s.do(http.MethodPost, "/users/"+userID+"/cart", map[string]interface{}{"bookId": "missing", "quantity": -1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ResourceBook, env.Error.Resource)

	// 购买记录
	w, env = s.do(http.MethodPost, "/users/"+userID+"/purchaseHistory", map[string]string{"bookId": bookID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var u struct {
		PurchaseHistory []struct {
			ID           string      `json:"id"`
			ASIN         string      `json:"asin"`
			Category     string      `json:"category"`
			Price        json.Number `json:"price"`
			PurchaseDate string      `json:"purchaseDate"`
		} `json:"purchaseHistory"`
	}
	decode(t, env, &u)
	require.Len(t, u.PurchaseHistory, 1)
	entry := u.PurchaseHistory[0]
	assert.Equal(t, "X1", entry.ASIN)
	assert.Equal(t, "fantasy", entry.Category)
	assert.Equal(t, "9.99", entry.Price.String())
	assert.NotEmpty(t, entry.PurchaseDate)
	assert.NotEqual(t, bookID, entry.ID)

	base := "/users/" + userID + "/purchaseHistory/"

	w, _ = s.do(http.MethodGet, base+entry.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodPut, base+entry.ID, map[string]interface{}{"title": "Dune (signed)"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = s.do(http.MethodPut, base+entry.ID, map[string]interface{}{"category": "poetry"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodGet, base+"missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ResourcePurchase, env.Error.Resource)

	// 记录不存在时删除也成功
	w, env = s.do(http.MethodDelete, base+"missing", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	decode(t, env, &u)
	assert.Len(t, u.PurchaseHistory, 1)

	w, env = s.do(http.MethodDelete, base+entry.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	decode(t, env, &u)
	assert.Empty(t, u.PurchaseHistory)

	w, env = s.do(http.MethodDelete, "/users/missing/purchaseHistory/"+entry.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ResourceUser, env.Error.Resource)
}
