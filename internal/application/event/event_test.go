package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/pkg/mq"
)

// recordingPublisher 记录已发布事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []mq.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e mq.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func TestPublish(t *testing.T) {
	t.Run("发布成功", func(t *testing.T) {
		p := &recordingPublisher{}
		Publish(context.Background(), p, TypeCartItemAdded, CartItemAdded{UserID: "u1", BookID: "b1", Quantity: 2, Total: 5})

		require.Len(t, p.events, 1)
		assert.Equal(t, TypeCartItemAdded, p.events[0].Type)
		assert.Equal(t, 5, p.events[0].Payload.(CartItemAdded).Total)
	})

	t.Run("发布失败不影响调用方", func(t *testing.T) {
		p := &recordingPublisher{err: errors.New("broker down")}
		assert.NotPanics(t, func() {
			Publish(context.Background(), p, TypePurchaseRecorded, PurchaseRecorded{UserID: "u1"})
		})
		assert.Len(t, p.events, 1)
	})
}
