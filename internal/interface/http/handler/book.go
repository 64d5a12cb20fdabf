package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBookUseCase *appbook.CreateBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
	getBookUseCase    *appbook.GetBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase: createBookUseCase,
		listBooksUseCase:  listBooksUseCase,
		getBookUseCase:    getBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  引用的作者必须已存在
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.IDResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	// 2. 调用应用层用例
	result, err := h.createBookUseCase.Execute(c.Request.Context(), req.ToUseCase())
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 只返回ID
	response.Created(c, &dto.IDResponse{ID: result.ID})
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  过滤: field=v, field=a,b, field!=v, field>v, field>=v, field<v, field<=v (asin/title/category/price)
// @Description  排序: sort=-price,title  分页: skip(offset)默认0, limit默认10
// @Tags         图书
// @Produce      json
// @Param        category query string false "分类" example(fantasy)
// @Param        sort query string false "排序" example(-price,title)
// @Param        skip query int false "跳过条数"
// @Param        limit query int false "每页条数(最大100)"
// @Success      200 {object} response.Response{data=dto.BookListResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	params, err := dto.ParseListBooksQuery(c.Request.URL.RawQuery)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.listBooksUseCase.Execute(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.NewBookListResponse(result, c.Request.URL.Path, c.Request.URL.RawQuery))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	b, err := h.getBookUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// UpdateBook 更新图书
// @Summary      更新图书(部分字段)
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path string true "图书ID"
// @Param        request body dto.UpdateBookRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	b, err := h.updateBookUseCase.Execute(c.Request.Context(), c.Param("id"), req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookResponse(b))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Param        id path string true "图书ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	if err := h.deleteBookUseCase.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
