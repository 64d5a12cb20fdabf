package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	addToCartUseCase *appcart.AddToCartUseCase
	getCartUseCase   *appcart.GetCartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(addToCartUseCase *appcart.AddToCartUseCase, getCartUseCase *appcart.GetCartUseCase) *CartHandler {
	return &CartHandler{
		addToCartUseCase: addToCartUseCase,
		getCartUseCase:   getCartUseCase,
	}
}

// AddToCart 加购
// @Summary      加入购物车
// @Description  没有Active购物车时自动创建;同一本书重复加购累加数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        userId path string true "用户ID"
// @Param        request body dto.AddToCartRequest true "图书和数量"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "用户或图书不存在"
// @Router       /users/{userId}/cart [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	result, err := h.addToCartUseCase.Execute(c.Request.Context(), appcart.AddToCartRequest{
		UserID:   c.Param("userId"),
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(result))
}

// GetCart 查询购物车
// @Summary      查询当前购物车
// @Tags         购物车
// @Produce      json
// @Param        userId path string true "用户ID"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Failure      404 {object} response.Response "用户不存在或没有购物车"
// @Router       /users/{userId}/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	result, err := h.getCartUseCase.Execute(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(result))
}
