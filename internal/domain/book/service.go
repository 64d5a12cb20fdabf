package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/author"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验(必填字段、分类枚举、作者引用)
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书
	// 业务规则:
	// - asin/title/img/category必填,category必须是固定枚举
	// - 价格不能为负
	// - 引用的作者必须存在
	CreateBook(ctx context.Context, book *Book) (*Book, error)

	// GetBook 根据ID获取图书(含作者姓名)
	GetBook(ctx context.Context, id string) (*Book, error)

	// UpdateBook 部分更新,合并后重新校验
	UpdateBook(ctx context.Context, id string, patch Patch) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id string) error

	// ListBooks 条件查询,skip默认0,limit默认10
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo    Repository
	authors author.Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository, authors author.Repository) Service {
	return &service{repo: repo, authors: authors}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, b *Book) (*Book, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.AuthorIDs = uniqueIDs(b.AuthorIDs)
	if err := s.checkAuthors(ctx, b.AuthorIDs); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// 重新读取,返回展开作者后的完整图书
	return s.repo.FindByID(ctx, b.ID)
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id string) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书
func (s *service) UpdateBook(ctx context.Context, id string, patch Patch) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.Apply(patch)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if patch.AuthorIDs != nil {
		b.AuthorIDs = uniqueIDs(b.AuthorIDs)
		if err := s.checkAuthors(ctx, b.AuthorIDs); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListBooks 条件查询
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	if err := params.Normalize(); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, params)
}

// checkAuthors 校验作者引用全部存在(ids已去重)
func (s *service) checkAuthors(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	found, err := s.authors.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return ErrUnknownAuthor
	}
	return nil
}

// uniqueIDs 去重并保持原有顺序
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
