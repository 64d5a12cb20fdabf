package mq

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	e := NewEvent("cart.item_added", map[string]interface{}{"userId": "u1", "quantity": 2})

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "cart.item_added", e.Type)
	assert.WithinDuration(t, time.Now(), e.OccurredAt, time.Second)

	body, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "cart.item_added", decoded["type"])
	assert.Equal(t, "u1", decoded["payload"].(map[string]interface{})["userId"])
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), NewEvent("x", nil)))
	assert.NoError(t, p.Close())
}

// TestRabbitPublisher 需要RabbitMQ,未设置BOOKSHOP_TEST_AMQP_URL时跳过
func TestRabbitPublisher(t *testing.T) {
	url := os.Getenv("BOOKSHOP_TEST_AMQP_URL")
	if url == "" {
		t.Skip("未设置BOOKSHOP_TEST_AMQP_URL,跳过RabbitMQ集成测试")
	}

	const exchange = "bookshop.events.test"
	p, err := NewRabbitPublisher(url, exchange)
	require.NoError(t, err)
	defer p.Close()

	conn, err := amqp.Dial(url)
	require.NoError(t, err)
	defer conn.Close()
	ch, err := conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "purchase.*", exchange, false, nil))
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	event := NewEvent("purchase.recorded", map[string]string{"userId": "u1"})
	require.NoError(t, p.Publish(context.Background(), event))

	select {
	case d := <-deliveries:
		assert.Equal(t, event.ID, d.MessageId)
		assert.Equal(t, "purchase.recorded", d.RoutingKey)
	case <-time.After(5 * time.Second):
		t.Fatal("未收到消息")
	}
}
