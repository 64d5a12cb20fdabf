package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// UserHandler 用户HTTP处理器
type UserHandler struct {
	createUserUseCase *appuser.CreateUserUseCase
	listUsersUseCase  *appuser.ListUsersUseCase
	getUserUseCase    *appuser.GetUserUseCase
	updateUserUseCase *appuser.UpdateUserUseCase
	deleteUserUseCase *appuser.DeleteUserUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	createUserUseCase *appuser.CreateUserUseCase,
	listUsersUseCase *appuser.ListUsersUseCase,
	getUserUseCase *appuser.GetUserUseCase,
	updateUserUseCase *appuser.UpdateUserUseCase,
	deleteUserUseCase *appuser.DeleteUserUseCase,
) *UserHandler {
	return &UserHandler{
		createUserUseCase: createUserUseCase,
		listUsersUseCase:  listUsersUseCase,
		getUserUseCase:    getUserUseCase,
		updateUserUseCase: updateUserUseCase,
		deleteUserUseCase: deleteUserUseCase,
	}
}

// CreateUser 创建用户
// @Summary      创建用户
// @Description  age必须在18到65之间
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateUserRequest true "用户信息"
// @Success      201 {object} response.Response{data=dto.IDResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}
	ucReq, err := req.ToUseCase()
	if err != nil {
		response.Error(c, err)
		return
	}

	// 2. 调用应用层用例
	u, err := h.createUserUseCase.Execute(c.Request.Context(), ucReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.IDResponse{ID: u.ID})
}

// ListUsers 用户列表
// @Summary      用户列表
// @Tags         用户
// @Produce      json
// @Param        skip query int false "跳过条数"
// @Param        limit query int false "每页条数"
// @Success      200 {object} response.Response{data=dto.UserListResponse}
// @Router       /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	skip, limit := q.Normalize()
	result, err := h.listUsersUseCase.Execute(c.Request.Context(), skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserListResponse(result.Users, result.Total))
}

// GetUser 用户详情
// @Summary      用户详情
// @Tags         用户
// @Produce      json
// @Param        userId path string true "用户ID"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /users/{userId} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.getUserUseCase.Execute(c.Request.Context(), c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}

// UpdateUser 更新用户
// @Summary      更新用户(部分字段)
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        userId path string true "用户ID"
// @Param        request body dto.UpdateUserRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /users/{userId} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		response.Error(c, err)
		return
	}

	u, err := h.updateUserUseCase.Execute(c.Request.Context(), c.Param("userId"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}

// DeleteUser 删除用户
// @Summary      删除用户
// @Tags         用户
// @Param        userId path string true "用户ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /users/{userId} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.deleteUserUseCase.Execute(c.Request.Context(), c.Param("userId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
