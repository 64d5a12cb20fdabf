package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/author"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// authorRepository 作者仓储实现(MySQL)
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

// Create 创建作者
func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找作者
func (r *authorRepository) FindByID(ctx context.Context, id string) (*author.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

// FindByIDs 批量查询作者
func (r *authorRepository) FindByIDs(ctx context.Context, ids []string) ([]*author.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []AuthorModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询作者失败")
	}

	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, nil
}

// Update 更新作者
func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	result := getDB(ctx, r.db).Model(&AuthorModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"first_name": a.FirstName,
			"last_name":  a.LastName,
			"updated_at": a.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新作者失败")
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound(a.ID)
	}
	return nil
}

// Delete 删除作者(软删除)
// 已引用该作者的图书在展开时会自动跳过它
func (r *authorRepository) Delete(ctx context.Context, id string) error {
	result := getDB(ctx, r.db).Where("id = ?", id).Delete(&AuthorModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除作者失败")
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound(id)
	}
	return nil
}

// List 分页查询作者
func (r *authorRepository) List(ctx context.Context, skip, limit int) ([]*author.Author, int64, error) {
	var (
		models []AuthorModel
		total  int64
	)

	query := getDB(ctx, r.db).Model(&AuthorModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者总数失败")
	}

	if err := query.Order("created_at ASC").Order("id ASC").
		Offset(skip).Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者列表失败")
	}

	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, total, nil
}

// toAuthorEntity GORM模型 → 领域实体
func toAuthorEntity(model *AuthorModel) *author.Author {
	return &author.Author{
		ID:        model.ID,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
