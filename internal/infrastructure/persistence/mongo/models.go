package mongo

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// authorDoc 作者文档
type authorDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// bookDoc 图书文档
// 价格存为Decimal128,过滤和排序按数值比较
type bookDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	ASIN      string               `bson:"asin"`
	Title     string               `bson:"title"`
	Img       string               `bson:"img"`
	Price     primitive.Decimal128 `bson:"price"`
	Category  string               `bson:"category"`
	Authors   []primitive.ObjectID `bson:"authors"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

// userDoc 用户文档,购买记录内嵌为数组
type userDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	FirstName       string             `bson:"firstName"`
	LastName        string             `bson:"lastName"`
	Email           string             `bson:"email"`
	DateOfBirth     time.Time          `bson:"dateOfBirth"`
	Age             int                `bson:"age"`
	Professions     []string           `bson:"professions"`
	Address         addressDoc         `bson:"address"`
	PurchaseHistory []purchaseDoc      `bson:"purchaseHistory"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

type addressDoc struct {
	Street string `bson:"street"`
	Number int    `bson:"number"`
}

type purchaseDoc struct {
	ID           primitive.ObjectID   `bson:"_id"`
	Title        string               `bson:"title"`
	Category     string               `bson:"category"`
	ASIN         string               `bson:"asin"`
	Price        primitive.Decimal128 `bson:"price"`
	PurchaseDate time.Time            `bson:"purchaseDate"`
}

// cartDoc 购物车文档
type cartDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Owner     string             `bson:"owner"`
	Status    string             `bson:"status"`
	Products  []lineItemDoc      `bson:"products"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type lineItemDoc struct {
	ProductID string `bson:"productId"`
	Quantity  int    `bson:"quantity"`
}

// toDecimal128 decimal.Decimal → Decimal128
func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		// decimal.String()总是合法的十进制字面量
		return primitive.NewDecimal128(0, 0)
	}
	return v
}

// fromDecimal128 Decimal128 → decimal.Decimal
func fromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseIDs 把字符串ID转成ObjectID,非法ID返回false
func parseIDs(ids []string) ([]primitive.ObjectID, bool) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, false
		}
		out = append(out, oid)
	}
	return out, true
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}
