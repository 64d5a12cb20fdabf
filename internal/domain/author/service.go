package author

import (
	"context"
)

// Service 作者领域服务接口
type Service interface {
	CreateAuthor(ctx context.Context, firstName, lastName string) (*Author, error)
	GetAuthor(ctx context.Context, id string) (*Author, error)
	UpdateAuthor(ctx context.Context, id string, patch Patch) (*Author, error)
	DeleteAuthor(ctx context.Context, id string) error
	ListAuthors(ctx context.Context, skip, limit int) ([]*Author, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建作者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateAuthor(ctx context.Context, firstName, lastName string) (*Author, error) {
	a := NewAuthor(firstName, lastName)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) GetAuthor(ctx context.Context, id string) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateAuthor(ctx context.Context, id string, patch Patch) (*Author, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Apply(patch)
	if err := a.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) DeleteAuthor(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListAuthors(ctx context.Context, skip, limit int) ([]*Author, int64, error) {
	return s.repo.List(ctx, skip, limit)
}
