package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 年龄范围
const (
	MinAge = 18
	MaxAge = 65
)

var validate = validator.New()

// Address 地址(内嵌值对象)
type Address struct {
	Street string
	Number int
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. PurchaseHistory是内嵌在用户聚合内的有序集合,只能通过用户聚合修改
// 2. 每条购买记录有独立的ID(由仓储生成),与来源图书ID无关
// 3. 领域实体不依赖GORM/BSON tag
type User struct {
	ID              string
	FirstName       string
	LastName        string
	Email           string
	DateOfBirth     time.Time
	Age             int
	Professions     []string
	Address         Address
	PurchaseHistory []PurchaseEntry
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser 创建新用户（工厂方法）
func NewUser(firstName, lastName, email string, dateOfBirth time.Time, age int, professions []string, address Address) *User {
	now := time.Now()
	return &User{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		DateOfBirth: dateOfBirth,
		Age:         age,
		Professions: professions,
		Address:     address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate 业务规则校验
// - firstName/lastName/email/dateOfBirth必填
// - email格式合法
// - age在[18,65]之间
func (u *User) Validate() error {
	var fields []string
	if u.FirstName == "" {
		fields = append(fields, "firstName")
	}
	if u.LastName == "" {
		fields = append(fields, "lastName")
	}
	if u.Email == "" || validate.Var(u.Email, "email") != nil {
		fields = append(fields, "email")
	}
	if u.DateOfBirth.IsZero() {
		fields = append(fields, "dateOfBirth")
	}
	if u.Age < MinAge || u.Age > MaxAge {
		fields = append(fields, "age")
	}
	if len(fields) > 0 {
		return apperrors.Validation(fields...)
	}
	return nil
}

// Patch 部分更新(nil表示不修改)
type Patch struct {
	FirstName   *string
	LastName    *string
	Email       *string
	DateOfBirth *time.Time
	Age         *int
	Professions []string
	Address     *Address
}

// Apply 合并部分更新字段
func (u *User) Apply(p Patch) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.DateOfBirth != nil {
		u.DateOfBirth = *p.DateOfBirth
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Professions != nil {
		u.Professions = p.Professions
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	u.UpdatedAt = time.Now()
}

// =========================================
// 购买记录
// =========================================

// PurchaseEntry 购买记录
// 购买时从图书复制title/category/asin/price,之后与图书生命周期解耦
type PurchaseEntry struct {
	ID           string
	Title        string
	Category     book.Category
	ASIN         string
	Price        decimal.Decimal
	PurchaseDate time.Time
}

// NewPurchaseEntry 从图书快照生成购买记录(ID由仓储生成)
func NewPurchaseEntry(b *book.Book, purchasedAt time.Time) *PurchaseEntry {
	return &PurchaseEntry{
		Title:        b.Title,
		Category:     b.Category,
		ASIN:         b.ASIN,
		Price:        b.Price,
		PurchaseDate: purchasedAt,
	}
}

// PurchasePatch 购买记录部分更新
type PurchasePatch struct {
	Title        *string
	Category     *book.Category
	ASIN         *string
	Price        *decimal.Decimal
	PurchaseDate *time.Time
}

// Validate 校验分类枚举与价格
func (p PurchasePatch) Validate() error {
	var fields []string
	if p.Category != nil && !p.Category.Valid() {
		fields = append(fields, "category")
	}
	if p.Price != nil && p.Price.IsNegative() {
		fields = append(fields, "price")
	}
	if len(fields) > 0 {
		return apperrors.Validation(fields...)
	}
	return nil
}

// FindPurchase 线性查找购买记录(ID统一按字符串比较)
func (u *User) FindPurchase(entryID string) (*PurchaseEntry, bool) {
	for i := range u.PurchaseHistory {
		if u.PurchaseHistory[i].ID == entryID {
			return &u.PurchaseHistory[i], true
		}
	}
	return nil, false
}

// UpdatePurchase 就地合并购买记录(patch优先)
func (u *User) UpdatePurchase(entryID string, p PurchasePatch) error {
	if err := p.Validate(); err != nil {
		return err
	}

	entry, ok := u.FindPurchase(entryID)
	if !ok {
		return ErrPurchaseNotFound(entryID)
	}

	if p.Title != nil {
		entry.Title = *p.Title
	}
	if p.Category != nil {
		entry.Category = *p.Category
	}
	if p.ASIN != nil {
		entry.ASIN = *p.ASIN
	}
	if p.Price != nil {
		entry.Price = *p.Price
	}
	if p.PurchaseDate != nil {
		entry.PurchaseDate = *p.PurchaseDate
	}
	u.UpdatedAt = time.Now()
	return nil
}
