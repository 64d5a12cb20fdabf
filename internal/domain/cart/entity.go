package cart

import (
	"time"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Status 购物车状态
type Status string

const (
	StatusActive Status = "Active" // 可继续加购
	StatusPaid   Status = "Paid"   // 已结算(关闭)
)

// LineItem 购物车明细
type LineItem struct {
	ProductID string // 图书ID
	Quantity  int
}

// Cart 购物车实体（聚合根）
// 业务规则:
// 1. 每个用户最多一个Active购物车(由存储层唯一约束保证)
// 2. 同一本书在购物车中只占一行,重复加购累加数量
type Cart struct {
	ID        string
	OwnerID   string
	Status    Status
	Products  []LineItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Line 查找某本书的明细
func (c *Cart) Line(productID string) (LineItem, bool) {
	for _, item := range c.Products {
		if item.ProductID == productID {
			return item, true
		}
	}
	return LineItem{}, false
}

// ValidateQuantity 加购数量必须>=1
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return apperrors.Validationf("quantity", "数量必须大于0")
	}
	return nil
}

// ErrCartNotFound 用户没有Active购物车
func ErrCartNotFound(ownerID string) error {
	return apperrors.NotFound(apperrors.ResourceCart, ownerID)
}
