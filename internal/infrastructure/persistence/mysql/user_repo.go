package mysql

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/user"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// userRepository 用户仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/user/repository.go定义的接口
// 2. 购买记录存放在purchases子表,读取用户时总是按ID顺序预加载
// 3. Push/Pull在事务内先确认用户存在,再写子表
type userRepository struct {
	db *gorm.DB
	tx *TxManager
}

// NewUserRepository 创建用户仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db, tx: NewTxManager(db)}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).
		Preload("Purchases", orderByID).
		Where("id = ?", id).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}

	return toUserEntity(&model), nil
}

// Update 整体写回用户
// 学习要点:这是"读取-修改-写回"模式,并发修改同一用户时后写者覆盖先写者
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	purchases := model.Purchases
	model.Purchases = nil

	return r.tx.Transaction(ctx, func(ctx context.Context) error {
		db := getDB(ctx, r.db)

		result := db.Model(&UserModel{}).
			Where("id = ?", u.ID).
			Select("first_name", "last_name", "email", "date_of_birth", "age",
				"professions", "address_street", "address_number", "updated_at").
			Updates(model)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "更新用户失败")
		}
		if result.RowsAffected == 0 {
			return user.ErrUserNotFound(u.ID)
		}

		for i := range purchases {
			p := &purchases[i]
			if err := db.Model(&PurchaseModel{}).
				Where("id = ? AND user_id = ?", p.ID, u.ID).
				Select("title", "category", "asin", "price", "purchase_date").
				Updates(p).Error; err != nil {
				return apperrors.Wrap(err, "更新购买记录失败")
			}
		}
		return nil
	})
}

// Delete 删除用户(软删除)
func (r *userRepository) Delete(ctx context.Context, id string) error {
	result := getDB(ctx, r.db).Where("id = ?", id).Delete(&UserModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除用户失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound(id)
	}
	return nil
}

// List 分页查询用户
func (r *userRepository) List(ctx context.Context, skip, limit int) ([]*user.User, int64, error) {
	var (
		models []UserModel
		total  int64
	)

	query := getDB(ctx, r.db).Model(&UserModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户总数失败")
	}

	if err := query.Preload("Purchases", orderByID).
		Order("created_at ASC").Order("id ASC").
		Offset(skip).Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户列表失败")
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, total, nil
}

// PushPurchase 追加购买记录
func (r *userRepository) PushPurchase(ctx context.Context, userID string, entry *user.PurchaseEntry) (*user.User, error) {
	model := toPurchaseModel(userID, entry)

	err := r.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := r.ensureExists(ctx, userID); err != nil {
			return err
		}
		if err := getDB(ctx, r.db).Create(model).Error; err != nil {
			return apperrors.Wrap(err, "添加购买记录失败")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry.ID = model.ID
	return r.FindByID(ctx, userID)
}

// PullPurchase 移除购买记录
// 注意:记录不存在时DELETE影响0行,不报错,直接返回用户
func (r *userRepository) PullPurchase(ctx context.Context, userID, entryID string) (*user.User, error) {
	err := r.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := r.ensureExists(ctx, userID); err != nil {
			return err
		}
		if err := getDB(ctx, r.db).
			Where("id = ? AND user_id = ?", entryID, userID).
			Delete(&PurchaseModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除购买记录失败")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, userID)
}

// ensureExists 确认用户存在(软删除的用户视为不存在)
func (r *userRepository) ensureExists(ctx context.Context, id string) error {
	var count int64
	if err := getDB(ctx, r.db).Model(&UserModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Wrap(err, "查询用户失败")
	}
	if count == 0 {
		return user.ErrUserNotFound(id)
	}
	return nil
}

// orderByID 购买记录按ID(UUIDv7)排序,即插入顺序
func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toUserModel(u *user.User) *UserModel {
	model := &UserModel{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		Age:         u.Age,
		Professions: datatypes.NewJSONSlice(u.Professions),
		Address: AddressModel{
			Street: u.Address.Street,
			Number: u.Address.Number,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	for i := range u.PurchaseHistory {
		model.Purchases = append(model.Purchases, *toPurchaseModel(u.ID, &u.PurchaseHistory[i]))
	}
	return model
}

func toPurchaseModel(userID string, e *user.PurchaseEntry) *PurchaseModel {
	return &PurchaseModel{
		ID:           e.ID,
		UserID:       userID,
		Title:        e.Title,
		Category:     string(e.Category),
		ASIN:         e.ASIN,
		Price:        e.Price,
		PurchaseDate: e.PurchaseDate,
	}
}

func toUserEntity(model *UserModel) *user.User {
	u := &user.User{
		ID:          model.ID,
		FirstName:   model.FirstName,
		LastName:    model.LastName,
		Email:       model.Email,
		DateOfBirth: model.DateOfBirth,
		Age:         model.Age,
		Professions: []string(model.Professions),
		Address: user.Address{
			Street: model.Address.Street,
			Number: model.Address.Number,
		},
		PurchaseHistory: make([]user.PurchaseEntry, 0, len(model.Purchases)),
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
	for _, p := range model.Purchases {
		u.PurchaseHistory = append(u.PurchaseHistory, user.PurchaseEntry{
			ID:           p.ID,
			Title:        p.Title,
			Category:     book.Category(p.Category),
			ASIN:         p.ASIN,
			Price:        p.Price,
			PurchaseDate: p.PurchaseDate,
		})
	}
	return u
}
