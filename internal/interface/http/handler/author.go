package handler

import (
	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookshop/internal/application/author"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	createAuthorUseCase *appauthor.CreateAuthorUseCase
	listAuthorsUseCase  *appauthor.ListAuthorsUseCase
	getAuthorUseCase    *appauthor.GetAuthorUseCase
	updateAuthorUseCase *appauthor.UpdateAuthorUseCase
	deleteAuthorUseCase *appauthor.DeleteAuthorUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(
	createAuthorUseCase *appauthor.CreateAuthorUseCase,
	listAuthorsUseCase *appauthor.ListAuthorsUseCase,
	getAuthorUseCase *appauthor.GetAuthorUseCase,
	updateAuthorUseCase *appauthor.UpdateAuthorUseCase,
	deleteAuthorUseCase *appauthor.DeleteAuthorUseCase,
) *AuthorHandler {
	return &AuthorHandler{
		createAuthorUseCase: createAuthorUseCase,
		listAuthorsUseCase:  listAuthorsUseCase,
		getAuthorUseCase:    getAuthorUseCase,
		updateAuthorUseCase: updateAuthorUseCase,
		deleteAuthorUseCase: deleteAuthorUseCase,
	}
}

// CreateAuthor 创建作者
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateAuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=dto.IDResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /authors [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	a, err := h.createAuthorUseCase.Execute(c.Request.Context(), req.FirstName, req.LastName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, &dto.IDResponse{ID: a.ID})
}

// ListAuthors 作者列表
// @Summary      作者列表
// @Tags         作者
// @Produce      json
// @Param        skip query int false "跳过条数"
// @Param        limit query int false "每页条数"
// @Success      200 {object} response.Response{data=dto.AuthorListResponse}
// @Router       /authors [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	skip, limit := q.Normalize()
	result, err := h.listAuthorsUseCase.Execute(c.Request.Context(), skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorListResponse(result.Authors, result.Total))
}

// GetAuthor 作者详情
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Param        id path string true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /authors/{id} [get]
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	a, err := h.getAuthorUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}

// UpdateAuthor 更新作者
// @Summary      更新作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Param        id path string true "作者ID"
// @Param        request body dto.UpdateAuthorRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /authors/{id} [put]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	var req dto.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	a, err := h.updateAuthorUseCase.Execute(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthorResponse(a))
}

// DeleteAuthor 删除作者
// @Summary      删除作者
// @Tags         作者
// @Param        id path string true "作者ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /authors/{id} [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	if err := h.deleteAuthorUseCase.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
