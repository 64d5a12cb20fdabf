package dto

import "github.com/xiebiao/bookshop/internal/domain/cart"

// AddToCartRequest 加购请求
// quantity不在绑定阶段校验:先确认用户和图书存在,再由用例检查数量>=1
type AddToCartRequest struct {
	BookID   string `json:"bookId" binding:"required" example:"0190f7a2-5c1e-7c3a-9d1b-2f6a7e8b9c0d"`
	Quantity int    `json:"quantity" example:"2"`
}

// LineItemResponse 购物车明细
type LineItemResponse struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartResponse 购物车
type CartResponse struct {
	ID        string             `json:"id"`
	OwnerID   string             `json:"ownerId"`
	Status    string             `json:"status" example:"Active"`
	Products  []LineItemResponse `json:"products"`
	CreatedAt string             `json:"createdAt"`
	UpdatedAt string             `json:"updatedAt"`
}

func NewCartResponse(c *cart.Cart) *CartResponse {
	products := make([]LineItemResponse, 0, len(c.Products))
	for _, item := range c.Products {
		products = append(products, LineItemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return &CartResponse{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Status:    string(c.Status),
		Products:  products,
		CreatedAt: FormatTime(c.CreatedAt),
		UpdatedAt: FormatTime(c.UpdatedAt),
	}
}
