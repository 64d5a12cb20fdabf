package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDown = errors.New("redis: connection refused")

func fail() error { return errDown }
func ok() error   { return nil }

func TestBreaker(t *testing.T) {
	t.Run("连续失败达到阈值后熔断", func(t *testing.T) {
		b := New(Settings{Name: "cache", ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 }})

		for i := 0; i < 3; i++ {
			assert.ErrorIs(t, b.Execute(fail), errDown)
		}
		assert.Equal(t, StateOpen, b.State())

		called := false
		err := b.Execute(func() error { called = true; return nil })
		assert.ErrorIs(t, err, ErrOpenState)
		assert.False(t, called, "熔断时不调用fn")
	})

	t.Run("成功会重置连续失败计数", func(t *testing.T) {
		b := New(Settings{ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 }})

		_ = b.Execute(fail)
		_ = b.Execute(fail)
		require.NoError(t, b.Execute(ok))
		_ = b.Execute(fail)

		assert.Equal(t, StateClosed, b.State())
		c := b.Counts()
		assert.EqualValues(t, 4, c.Requests)
		assert.EqualValues(t, 1, c.ConsecutiveFailures)
	})

	t.Run("超时后半开,探测成功恢复", func(t *testing.T) {
		b := New(Settings{
			Timeout:     20 * time.Millisecond,
			ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
		})
		_ = b.Execute(fail)
		require.Equal(t, StateOpen, b.State())

		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, StateHalfOpen, b.State())

		require.NoError(t, b.Execute(ok))
		assert.Equal(t, StateClosed, b.State())
	})

	t.Run("半开状态探测失败重新熔断", func(t *testing.T) {
		b := New(Settings{
			Timeout:     20 * time.Millisecond,
			ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
		})
		_ = b.Execute(fail)
		time.Sleep(30 * time.Millisecond)

		assert.ErrorIs(t, b.Execute(fail), errDown)
		assert.Equal(t, StateOpen, b.State())
	})

	t.Run("IsSuccessful把业务错误计为成功", func(t *testing.T) {
		miss := errors.New("miss")
		b := New(Settings{
			ReadyToTrip:  func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
			IsSuccessful: func(err error) bool { return err == nil || errors.Is(err, miss) },
		})

		assert.ErrorIs(t, b.Execute(func() error { return miss }), miss)
		assert.Equal(t, StateClosed, b.State())
		assert.EqualValues(t, 1, b.Counts().TotalSuccesses)
	})

	t.Run("状态变化回调", func(t *testing.T) {
		var (
			mu          sync.Mutex
			transitions []string
		)
		b := New(Settings{
			Name:        "cache",
			Timeout:     20 * time.Millisecond,
			ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
			OnStateChange: func(name string, from, to State) {
				mu.Lock()
				defer mu.Unlock()
				transitions = append(transitions, name+":"+from.String()+"->"+to.String())
			},
		})

		_ = b.Execute(fail)
		time.Sleep(30 * time.Millisecond)
		_ = b.Execute(ok)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{
			"cache:closed->open",
			"cache:open->half-open",
			"cache:half-open->closed",
		}, transitions)
	})

	t.Run("统计窗口到期重置计数", func(t *testing.T) {
		b := New(Settings{Interval: 20 * time.Millisecond})
		_ = b.Execute(fail)
		time.Sleep(30 * time.Millisecond)

		assert.Equal(t, StateClosed, b.State())
		assert.Zero(t, b.Counts().Requests)
	})
}
