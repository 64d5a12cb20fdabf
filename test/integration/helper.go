// Package integration 针对运行中的服务做端到端测试
//
// 先启动服务,再设置BOOKSHOP_BASE_URL(如http://localhost:3001)后执行:
//
//	BOOKSHOP_BASE_URL=http://localhost:3001 go test ./test/integration/...
//
// 未设置时全部跳过
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Timeout HTTP请求超时时间
const Timeout = 10 * time.Second

// Response 统一响应结构
type Response struct {
	Status  int             `json:"-"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorDetail    `json:"error"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Code       int    `json:"code"`
	Resource   string `json:"resource"`
	ResourceID string `json:"resource_id"`
}

// IDData 创建接口返回的ID
type IDData struct {
	ID string `json:"id"`
}

// BookData 图书
type BookData struct {
	ID       string          `json:"id"`
	ASIN     string          `json:"asin"`
	Title    string          `json:"title"`
	Price    json.Number     `json:"price"`
	Category string          `json:"category"`
	Authors  []AuthorRefData `json:"authors"`
}

// AuthorRefData 图书中展开的作者
type AuthorRefData struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// BookListData 图书列表
type BookListData struct {
	Total int64       `json:"total"`
	Skip  int         `json:"skip"`
	Limit int         `json:"limit"`
	Books []*BookData `json:"books"`
}

// PurchaseData 购买记录
type PurchaseData struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Category string      `json:"category"`
	ASIN     string      `json:"asin"`
	Price    json.Number `json:"price"`
}

// UserData 用户(只取测试关心的字段)
type UserData struct {
	ID              string          `json:"id"`
	PurchaseHistory []*PurchaseData `json:"purchaseHistory"`
}

// CartData 购物车
type CartData struct {
	ID       string `json:"id"`
	OwnerID  string `json:"ownerId"`
	Status   string `json:"status"`
	Products []struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	} `json:"products"`
}

// baseURL 读取服务地址,未配置时跳过测试
func baseURL(t *testing.T) string {
	t.Helper()
	u := os.Getenv("BOOKSHOP_BASE_URL")
	if u == "" {
		t.Skip("未设置BOOKSHOP_BASE_URL,跳过集成测试")
	}
	return u
}

// Do 发送请求并解析统一响应;204时Data为空
func Do(t *testing.T, method, url string, body interface{}) *Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err, "JSON序列化失败")
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err, "创建HTTP请求失败")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	result := &Response{Status: resp.StatusCode}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, result), "解析JSON响应失败: %s", string(raw))
	}
	return result
}

// Decode 解析Data
func Decode(t *testing.T, resp *Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, v), "解析响应数据失败: %s", string(resp.Data))
}

// UniqueASIN 生成唯一的ASIN,避免重复运行时冲突
func UniqueASIN() string {
	return fmt.Sprintf("IT%08d", time.Now().UnixNano()%100000000)
}

// CreateAuthor 创建测试作者并返回ID
func CreateAuthor(t *testing.T, base, first, last string) string {
	t.Helper()
	resp := Do(t, http.MethodPost, base+"/authors", map[string]string{
		"firstName": first,
		"lastName":  last,
	})
	require.Equal(t, http.StatusCreated, resp.Status, "创建作者失败: %s", resp.Message)

	var data IDData
	Decode(t, resp, &data)
	return data.ID
}

// CreateBook 创建测试图书并返回ID
func CreateBook(t *testing.T, base, title, price, category string, authors ...string) string {
	t.Helper()
	resp := Do(t, http.MethodPost, base+"/books", map[string]interface{}{
		"asin":     UniqueASIN(),
		"title":    title,
		"img":      "https://img.example.com/" + uuid.NewString() + ".jpg",
		"price":    json.Number(price),
		"category": category,
		"authors":  authors,
	})
	require.Equal(t, http.StatusCreated, resp.Status, "创建图书失败: %s", resp.Message)

	var data IDData
	Decode(t, resp, &data)
	return data.ID
}

// CreateUser 创建测试用户并返回ID
func CreateUser(t *testing.T, base, first string) string {
	t.Helper()
	resp := Do(t, http.MethodPost, base+"/users", map[string]interface{}{
		"firstName":   first,
		"lastName":    "Tester",
		"email":       fmt.Sprintf("%s.%s@test.com", first, uuid.NewString()[:8]),
		"dateOfBirth": "1990-12-10",
		"age":         34,
		"professions": []string{"engineer"},
		"address":     map[string]interface{}{"street": "Via Roma", "number": 12},
	})
	require.Equal(t, http.StatusCreated, resp.Status, "创建用户失败: %s", resp.Message)

	var data IDData
	Decode(t, resp, &data)
	return data.ID
}
