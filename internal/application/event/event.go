// Package event 应用层领域事件
package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// 事件类型(同时作为routing key)
const (
	TypeCartItemAdded    = "cart.item_added"
	TypePurchaseRecorded = "purchase.recorded"
)

// CartItemAdded 加购成功
type CartItemAdded struct {
	CartID   string `json:"cartId"`
	UserID   string `json:"userId"`
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"` // 本次加购数量
	Total    int    `json:"total"`    // 加购后该书在购物车中的数量
}

// PurchaseRecorded 新增购买记录
type PurchaseRecorded struct {
	UserID  string `json:"userId"`
	EntryID string `json:"entryId"`
	ASIN    string `json:"asin"`
	Title   string `json:"title"`
	Price   string `json:"price"`
}

// Publish 发布事件
// 事件是旁路通知:发布失败只记日志和指标,不回滚已完成的写操作
func Publish(ctx context.Context, p mq.Publisher, eventType string, payload interface{}) {
	err := p.Publish(ctx, mq.NewEvent(eventType, payload))
	metrics.EventsPublishedTotal.WithLabelValues(eventType, metrics.Result(err)).Inc()
	if err != nil {
		zap.L().Warn("发布事件失败", zap.String("type", eventType), zap.Error(err))
	}
}
