package user

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/user"
)

// GetUserUseCase 用户详情(含购买记录)
type GetUserUseCase struct {
	userService user.Service
}

func NewGetUserUseCase(userService user.Service) *GetUserUseCase {
	return &GetUserUseCase{userService: userService}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, id string) (*user.User, error) {
	return uc.userService.GetUser(ctx, id)
}

// UpdateUserUseCase 部分更新用户,合并后重新校验
type UpdateUserUseCase struct {
	userService user.Service
}

func NewUpdateUserUseCase(userService user.Service) *UpdateUserUseCase {
	return &UpdateUserUseCase{userService: userService}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, id string, patch user.Patch) (*user.User, error) {
	return uc.userService.UpdateUser(ctx, id, patch)
}

// DeleteUserUseCase 删除用户
type DeleteUserUseCase struct {
	userService user.Service
}

func NewDeleteUserUseCase(userService user.Service) *DeleteUserUseCase {
	return &DeleteUserUseCase{userService: userService}
}

func (uc *DeleteUserUseCase) Execute(ctx context.Context, id string) error {
	return uc.userService.DeleteUser(ctx, id)
}

// ListUsersUseCase 分页查询用户
type ListUsersUseCase struct {
	userService user.Service
}

func NewListUsersUseCase(userService user.Service) *ListUsersUseCase {
	return &ListUsersUseCase{userService: userService}
}

// ListUsersResponse 分页结果
type ListUsersResponse struct {
	Users []*user.User
	Total int64
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, skip, limit int) (*ListUsersResponse, error) {
	users, total, err := uc.userService.ListUsers(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return &ListUsersResponse{Users: users, Total: total}, nil
}
