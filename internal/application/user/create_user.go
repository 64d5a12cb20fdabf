package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/user"
)

// CreateUserUseCase 创建用户用例
// 购买记录不能在创建时指定,只能通过购买记录接口追加
type CreateUserUseCase struct {
	userService user.Service
}

// NewCreateUserUseCase 创建用例
func NewCreateUserUseCase(userService user.Service) *CreateUserUseCase {
	return &CreateUserUseCase{userService: userService}
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth time.Time
	Age         int
	Professions []string
	Address     user.Address
}

// Execute 执行创建
func (uc *CreateUserUseCase) Execute(ctx context.Context, req CreateUserRequest) (*user.User, error) {
	u := user.NewUser(req.FirstName, req.LastName, req.Email, req.DateOfBirth, req.Age, req.Professions, req.Address)
	return uc.userService.CreateUser(ctx, u)
}
