// Package mq 领域事件发布(RabbitMQ)
//
// 事件以JSON发布到topic类型的Exchange,routing key即事件类型(如cart.item_added),
// 下游服务按需绑定队列。发布失败不影响主流程,由调用方记录日志和指标。
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Event 事件信封
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// NewEvent 创建事件(ID为UUID)
func NewEvent(eventType string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher 事件发布接口
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher 未启用消息队列时使用,丢弃所有事件
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }

// RabbitPublisher 基于RabbitMQ的发布者
// amqp.Channel不是并发安全的,发布时加锁
type RabbitPublisher struct {
	conn     *amqp.Connection
	exchange string

	mu      sync.Mutex
	channel *amqp.Channel
}

// NewRabbitPublisher 连接RabbitMQ并声明持久化的topic Exchange
func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	// durable=true, autoDelete=false, internal=false, noWait=false
	if err := channel.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("声明Exchange失败: %w", err)
	}

	zap.L().Info("消息发布者已创建", zap.String("exchange", exchange))
	return &RabbitPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

// Publish 发布事件,消息持久化
func (p *RabbitPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("事件序列化失败: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx, p.exchange, event.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    event.ID,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("发布事件失败: %w", err)
	}
	return nil
}

// Close 关闭Channel和连接
func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
