package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/user"
)

// AddressDTO 地址
type AddressDTO struct {
	Street string `json:"street" binding:"max=200" example:"Via Roma"`
	Number int    `json:"number" binding:"min=0" example:"12"`
}

// CreateUserRequest 创建用户请求
// 购买记录不接受客户端传入
type CreateUserRequest struct {
	FirstName   string     `json:"firstName" binding:"required,max=100" example:"Ada"`
	LastName    string     `json:"lastName" binding:"required,max=100" example:"Lovelace"`
	Email       string     `json:"email" binding:"required,email" example:"ada@example.com"`
	DateOfBirth string     `json:"dateOfBirth" binding:"required" example:"1990-12-10"`
	Age         int        `json:"age" binding:"required,min=18,max=65" example:"34"`
	Professions []string   `json:"professions" example:"mathematician"`
	Address     AddressDTO `json:"address"`
}

// ToUseCase 转换为应用层请求(解析出生日期)
func (r *CreateUserRequest) ToUseCase() (appuser.CreateUserRequest, error) {
	dob, err := ParseDate("dateOfBirth", r.DateOfBirth)
	if err != nil {
		return appuser.CreateUserRequest{}, err
	}
	return appuser.CreateUserRequest{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		DateOfBirth: dob,
		Age:         r.Age,
		Professions: r.Professions,
		Address:     user.Address{Street: r.Address.Street, Number: r.Address.Number},
	}, nil
}

// UpdateUserRequest 部分更新用户
type UpdateUserRequest struct {
	FirstName   *string     `json:"firstName" binding:"omitempty,max=100"`
	LastName    *string     `json:"lastName" binding:"omitempty,max=100"`
	Email       *string     `json:"email" binding:"omitempty,email"`
	DateOfBirth *string     `json:"dateOfBirth"`
	Age         *int        `json:"age" binding:"omitempty,min=18,max=65"`
	Professions []string    `json:"professions"`
	Address     *AddressDTO `json:"address"`
}

func (r *UpdateUserRequest) ToPatch() (user.Patch, error) {
	p := user.Patch{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Age:         r.Age,
		Professions: r.Professions,
	}
	if r.DateOfBirth != nil {
		dob, err := ParseDate("dateOfBirth", *r.DateOfBirth)
		if err != nil {
			return p, err
		}
		p.DateOfBirth = &dob
	}
	if r.Address != nil {
		p.Address = &user.Address{Street: r.Address.Street, Number: r.Address.Number}
	}
	return p, nil
}

// PurchaseResponse 购买记录
type PurchaseResponse struct {
	ID           string      `json:"id"`
	Title        string      `json:"title" example:"Dune"`
	Category     string      `json:"category" example:"fantasy"`
	ASIN         string      `json:"asin" example:"B00K3Z0U1K"`
	Price        json.Number `json:"price" swaggertype:"number" example:"9.99"`
	PurchaseDate time.Time   `json:"purchaseDate"`
}

func NewPurchaseResponse(e *user.PurchaseEntry) *PurchaseResponse {
	return &PurchaseResponse{
		ID:           e.ID,
		Title:        e.Title,
		Category:     string(e.Category),
		ASIN:         e.ASIN,
		Price:        Price(e.Price),
		PurchaseDate: e.PurchaseDate,
	}
}

func NewPurchaseListResponse(entries []user.PurchaseEntry) []*PurchaseResponse {
	items := make([]*PurchaseResponse, 0, len(entries))
	for i := range entries {
		items = append(items, NewPurchaseResponse(&entries[i]))
	}
	return items
}

// UserResponse 用户详情(含购买记录)
type UserResponse struct {
	ID              string              `json:"id"`
	FirstName       string              `json:"firstName"`
	LastName        string              `json:"lastName"`
	Email           string              `json:"email"`
	DateOfBirth     string              `json:"dateOfBirth" example:"1990-12-10"`
	Age             int                 `json:"age"`
	Professions     []string            `json:"professions"`
	Address         AddressDTO          `json:"address"`
	PurchaseHistory []*PurchaseResponse `json:"purchaseHistory"`
	CreatedAt       string              `json:"createdAt"`
	UpdatedAt       string              `json:"updatedAt"`
}

func NewUserResponse(u *user.User) *UserResponse {
	professions := u.Professions
	if professions == nil {
		professions = []string{}
	}
	return &UserResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		DateOfBirth:     u.DateOfBirth.Format(DateLayout),
		Age:             u.Age,
		Professions:     professions,
		Address:         AddressDTO{Street: u.Address.Street, Number: u.Address.Number},
		PurchaseHistory: NewPurchaseListResponse(u.PurchaseHistory),
		CreatedAt:       FormatTime(u.CreatedAt),
		UpdatedAt:       FormatTime(u.UpdatedAt),
	}
}

// UserListResponse 用户列表
type UserListResponse struct {
	Total int64           `json:"total"`
	Users []*UserResponse `json:"users"`
}

func NewUserListResponse(users []*user.User, total int64) *UserListResponse {
	items := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, NewUserResponse(u))
	}
	return &UserListResponse{Total: total, Users: items}
}

// AddPurchaseRequest 新增购买记录
type AddPurchaseRequest struct {
	BookID string `json:"bookId" binding:"required" example:"0190f7a2-5c1e-7c3a-9d1b-2f6a7e8b9c0d"`
}

// UpdatePurchaseRequest 修改购买记录,出现的字段覆盖原值
type UpdatePurchaseRequest struct {
	Title        *string          `json:"title" binding:"omitempty,max=200"`
	Category     *string          `json:"category" binding:"omitempty,oneof=history romance horror fantasy"`
	ASIN         *string          `json:"asin" binding:"omitempty,max=20"`
	Price        *decimal.Decimal `json:"price" swaggertype:"number"`
	PurchaseDate *time.Time       `json:"purchaseDate"`
}

func (r *UpdatePurchaseRequest) ToPatch() user.PurchasePatch {
	p := user.PurchasePatch{
		Title:        r.Title,
		ASIN:         r.ASIN,
		Price:        r.Price,
		PurchaseDate: r.PurchaseDate,
	}
	if r.Category != nil {
		c := book.Category(*r.Category)
		p.Category = &c
	}
	return p
}
