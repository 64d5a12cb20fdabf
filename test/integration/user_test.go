package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAndPurchases(t *testing.T) {
	base := baseURL(t)

	userID := CreateUser(t, base, "cart")
	bookID := CreateBook(t, base, "Cart Book", "12.50", "romance")
	userURL := base + "/users/" + userID

	t.Run("加购数量累加", func(t *testing.T) {
		resp := Do(t, http.MethodPost, userURL+"/cart", map[string]interface{}{"bookId": bookID, "quantity": 2})
		require.Equal(t, http.StatusOK, resp.Status, resp.Message)
		resp = Do(t, http.MethodPost, userURL+"/cart", map[string]interface{}{"bookId": bookID, "quantity": 3})
		require.Equal(t, http.StatusOK, resp.Status, resp.Message)

		var c CartData
		Decode(t, resp, &c)
		assert.Equal(t, userID, c.OwnerID)
		assert.Equal(t, "Active", c.Status)
		require.Len(t, c.Products, 1)
		assert.Equal(t, 5, c.Products[0].Quantity)
	})

	t.Run("加购不存在的图书", func(t *testing.T) {
		resp := Do(t, http.MethodPost, userURL+"/cart", map[string]interface{}{
			"bookId": "0190f7a2-0000-7000-8000-000000000000", "quantity": 1,
		})
		assert.Equal(t, http.StatusNotFound, resp.Status)
	})

	var entryID string
	t.Run("购买记录是图书快照", func(t *testing.T) {
		resp := Do(t, http.MethodPost, userURL+"/purchaseHistory", map[string]string{"bookId": bookID})
		require.Equal(t, http.StatusOK, resp.Status, resp.Message)

		var u UserData
		Decode(t, resp, &u)
		require.Len(t, u.PurchaseHistory, 1)
		p := u.PurchaseHistory[0]
		assert.Equal(t, "Cart Book", p.Title)
		assert.Equal(t, "12.5", p.Price.String())
		entryID = p.ID

		// 修改图书不影响已有记录
		Do(t, http.MethodPut, base+"/books/"+bookID, map[string]interface{}{"price": 99})

		resp = Do(t, http.MethodGet, userURL+"/purchaseHistory/"+entryID, nil)
		require.Equal(t, http.StatusOK, resp.Status)
		var got PurchaseData
		Decode(t, resp, &got)
		assert.Equal(t, "12.5", got.Price.String())
	})

	t.Run("更新与删除", func(t *testing.T) {
		require.NotEmpty(t, entryID)

		resp := Do(t, http.MethodPut, userURL+"/purchaseHistory/"+entryID, map[string]string{"title": "Renamed"})
		require.Equal(t, http.StatusOK, resp.Status, resp.Message)

		var u UserData
		Decode(t, resp, &u)
		require.Len(t, u.PurchaseHistory, 1)
		assert.Equal(t, "Renamed", u.PurchaseHistory[0].Title)

		resp = Do(t, http.MethodDelete, userURL+"/purchaseHistory/"+entryID, nil)
		assert.Equal(t, http.StatusOK, resp.Status)

		// 再删一次仍然成功
		resp = Do(t, http.MethodDelete, userURL+"/purchaseHistory/"+entryID, nil)
		assert.Equal(t, http.StatusOK, resp.Status)

		resp = Do(t, http.MethodGet, userURL+"/purchaseHistory", nil)
		require.Equal(t, http.StatusOK, resp.Status)
		var list []PurchaseData
		Decode(t, resp, &list)
		assert.Empty(t, list)
	})

	t.Run("用户不存在", func(t *testing.T) {
		resp := Do(t, http.MethodGet, base+"/users/0190f7a2-0000-7000-8000-000000000000/purchaseHistory", nil)
		assert.Equal(t, http.StatusNotFound, resp.Status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "user", resp.Error.Resource)
	})
}
