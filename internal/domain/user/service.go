package user

import (
	"context"
	"time"
)

// Service 用户领域服务接口
type Service interface {
	// CreateUser 创建用户
	// 业务规则:必填字段、email格式、age在[18,65]之间
	CreateUser(ctx context.Context, u *User) (*User, error)

	// GetUser 根据ID获取用户
	GetUser(ctx context.Context, id string) (*User, error)

	// UpdateUser 部分更新,合并后重新校验
	UpdateUser(ctx context.Context, id string, patch Patch) (*User, error)

	// DeleteUser 删除用户
	DeleteUser(ctx context.Context, id string) error

	// ListUsers 分页查询
	ListUsers(ctx context.Context, skip, limit int) ([]*User, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建用户领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateUser(ctx context.Context, u *User) (*User, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	// 购买记录只能通过addPurchase创建
	u.PurchaseHistory = nil
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
		u.UpdatedAt = u.CreatedAt
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateUser(ctx context.Context, id string, patch Patch) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.Apply(patch)
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListUsers(ctx context.Context, skip, limit int) ([]*User, int64, error) {
	return s.repo.List(ctx, skip, limit)
}
