package handler

import (
	"github.com/gin-gonic/gin"

	apppurchase "github.com/xiebiao/bookshop/internal/application/purchase"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// PurchaseHandler 购买记录HTTP处理器
type PurchaseHandler struct {
	addPurchaseUseCase    *apppurchase.AddPurchaseUseCase
	listPurchasesUseCase  *apppurchase.ListPurchasesUseCase
	getPurchaseUseCase    *apppurchase.GetPurchaseUseCase
	updatePurchaseUseCase *apppurchase.UpdatePurchaseUseCase
	removePurchaseUseCase *apppurchase.RemovePurchaseUseCase
}

// NewPurchaseHandler 创建购买记录处理器
func NewPurchaseHandler(
	addPurchaseUseCase *apppurchase.AddPurchaseUseCase,
	listPurchasesUseCase *apppurchase.ListPurchasesUseCase,
	getPurchaseUseCase *apppurchase.GetPurchaseUseCase,
	updatePurchaseUseCase *apppurchase.UpdatePurchaseUseCase,
	removePurchaseUseCase *apppurchase.RemovePurchaseUseCase,
) *PurchaseHandler {
	return &PurchaseHandler{
		addPurchaseUseCase:    addPurchaseUseCase,
		listPurchasesUseCase:  listPurchasesUseCase,
		getPurchaseUseCase:    getPurchaseUseCase,
		updatePurchaseUseCase: updatePurchaseUseCase,
		removePurchaseUseCase: removePurchaseUseCase,
	}
}

// AddPurchase 新增购买记录
// @Summary      新增购买记录
// @Description  复制图书的title/category/asin/price,purchaseDate为当前时间
// @Tags         购买记录
// @Accept       json
// @Produce      json
// @Param        userId path string true "用户ID"
// @Param        request body dto.AddPurchaseRequest true "图书ID"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "图书或用户不存在"
// @Router       /users/{userId}/purchaseHistory [post]
func (h *PurchaseHandler) AddPurchase(c *gin.Context) {
	var req dto.AddPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	u, err := h.addPurchaseUseCase.Execute(c.Request.Context(), c.Param("userId"), req.BookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}

// ListPurchases 购买记录列表
// @Summary      购买记录列表
// @Tags         购买记录
// @Produce      json
// @Param        userId path string true "用户ID"
// @Success      200 {object} response.Response{data=[]dto.PurchaseResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /users/{userId}/purchaseHistory [get]
func (h *PurchaseHandler) ListPurchases(c *gin.Context) {
	entries, err := h.listPurchasesUseCase.Execute(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewPurchaseListResponse(entries))
}

// GetPurchase 购买记录详情
// @Summary      购买记录详情
// @Tags         购买记录
// @Produce      json
// @Param        userId path string true "用户ID"
// @Param        entryId path string true "购买记录ID"
// @Success      200 {object} response.Response{data=dto.PurchaseResponse}
// @Failure      404 {object} response.Response "用户或记录不存在"
// @Router       /users/{userId}/purchaseHistory/{entryId} [get]
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	entry, err := h.getPurchaseUseCase.Execute(c.Request.Context(), c.Param("userId"), c.Param("entryId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewPurchaseResponse(entry))
}

// UpdatePurchase 修改购买记录
// @Summary      修改购买记录
// @Tags         购买记录
// @Accept       json
// @Produce      json
// @Param        userId path string true "用户ID"
// @Param        entryId path string true "购买记录ID"
// @Param        request body dto.UpdatePurchaseRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "用户或记录不存在"
// @Router       /users/{userId}/purchaseHistory/{entryId} [put]
func (h *PurchaseHandler) UpdatePurchase(c *gin.Context) {
	var req dto.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	u, err := h.updatePurchaseUseCase.Execute(c.Request.Context(), c.Param("userId"), c.Param("entryId"), req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}

// RemovePurchase 移除购买记录
// @Summary      移除购买记录
// @Description  记录不存在时同样返回成功(用户原样返回)
// @Tags         购买记录
// @Produce      json
// @Param        userId path string true "用户ID"
// @Param        entryId path string true "购买记录ID"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /users/{userId}/purchaseHistory/{entryId} [delete]
func (h *PurchaseHandler) RemovePurchase(c *gin.Context) {
	u, err := h.removePurchaseUseCase.Execute(c.Request.Context(), c.Param("userId"), c.Param("entryId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}
