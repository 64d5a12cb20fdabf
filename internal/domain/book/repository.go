package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(MySQL/MongoDB)
// 2. FindByID和List返回的图书已展开作者姓名(Authors字段)
type Repository interface {
	// Create 创建图书,回填ID与时间戳
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id string) (*Book, error)

	// Update 更新图书信息(整体写回)
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书
	Delete(ctx context.Context, id string) error

	// List 条件查询图书列表
	// 返回的total是满足过滤条件的总数,与Skip/Limit无关
	// 执行顺序固定为:过滤 → 排序 → 跳过Skip条 → 取Limit条
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)
}
