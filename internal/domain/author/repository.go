package author

import "context"

// Repository 作者仓储接口
type Repository interface {
	Create(ctx context.Context, author *Author) error
	FindByID(ctx context.Context, id string) (*Author, error)
	// FindByIDs 批量查询,不存在的ID直接忽略(用于图书引用校验与展开)
	FindByIDs(ctx context.Context, ids []string) ([]*Author, error)
	Update(ctx context.Context, author *Author) error
	Delete(ctx context.Context, id string) error
	// List 按创建时间顺序分页
	List(ctx context.Context, skip, limit int) ([]*Author, int64, error)
}
