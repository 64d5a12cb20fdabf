// Package circuitbreaker 熔断器
//
// 用于保护可降级的外部依赖(目前是Redis缓存):
// 依赖连续失败达到阈值后熔断器打开,后续调用立即返回ErrOpenState,
// 调用方直接走降级路径(如回源数据库),超时后进入半开状态放行少量探测请求。
//
// 状态转换:CLOSED → OPEN → HALF_OPEN → CLOSED(探测成功)/OPEN(探测失败)
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 正常放行,统计失败
	StateOpen                  // 快速失败
	StateHalfOpen              // 放行MaxRequests个探测请求
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrOpenState 熔断器打开(或半开状态探测名额已满)
var ErrOpenState = errors.New("circuit breaker is open")

// Counts 当前统计窗口内的计数
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

func (c *Counts) success() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) failure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// Settings 熔断器配置,零值字段使用默认值
type Settings struct {
	Name string

	// MaxRequests 半开状态允许通过的探测请求数,默认1
	MaxRequests uint32

	// Interval CLOSED状态下统计窗口长度,0表示不按时间重置
	Interval time.Duration

	// Timeout OPEN状态持续时间,默认30s
	Timeout time.Duration

	// ReadyToTrip CLOSED状态下每次失败后调用,返回true时熔断
	// 默认:连续失败5次
	ReadyToTrip func(counts Counts) bool

	// IsSuccessful 判断调用结果是否计为成功,默认err == nil
	// 缓存未命中之类的"业务性"错误应计为成功
	IsSuccessful func(err error) bool

	// OnStateChange 状态变化回调(记日志/打点)
	OnStateChange func(name string, from, to State)
}

// Breaker 熔断器,并发安全
type Breaker struct {
	settings Settings

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增,丢弃跨代的结果
	counts     Counts
	expiry     time.Time
}

// New 创建熔断器
func New(s Settings) *Breaker {
	if s.MaxRequests == 0 {
		s.MaxRequests = 1
	}
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}
	if s.ReadyToTrip == nil {
		s.ReadyToTrip = func(c Counts) bool { return c.ConsecutiveFailures >= 5 }
	}
	if s.IsSuccessful == nil {
		s.IsSuccessful = func(err error) bool { return err == nil }
	}

	b := &Breaker{settings: s}
	b.toNewGeneration(time.Now())
	return b
}

// Name 熔断器名称
func (b *Breaker) Name() string {
	return b.settings.Name
}

// Execute 在熔断器保护下执行fn
// 熔断时不调用fn,直接返回ErrOpenState;否则原样返回fn的错误
func (b *Breaker) Execute(fn func() error) error {
	generation, err := b.beforeRequest()
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			b.afterRequest(generation, false)
			panic(r)
		}
	}()

	err = fn()
	b.afterRequest(generation, b.settings.IsSuccessful(err))
	return err
}

// State 当前状态
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, _ := b.currentState(time.Now())
	return state
}

// Counts 当前统计
func (b *Breaker) Counts() Counts {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.counts
}

func (b *Breaker) beforeRequest() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state, generation := b.currentState(time.Now())
	switch {
	case state == StateOpen:
		return generation, ErrOpenState
	case state == StateHalfOpen && b.counts.Requests >= b.settings.MaxRequests:
		return generation, ErrOpenState
	}

	b.counts.Requests++
	return generation, nil
}

func (b *Breaker) afterRequest(before uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	state, generation := b.currentState(now)
	if generation != before {
		return
	}

	if success {
		b.counts.success()
		if state == StateHalfOpen && b.counts.ConsecutiveSuccesses >= b.settings.MaxRequests {
			b.setState(StateClosed, now)
		}
		return
	}

	b.counts.failure()
	switch state {
	case StateClosed:
		if b.settings.ReadyToTrip(b.counts) {
			b.setState(StateOpen, now)
		}
	case StateHalfOpen:
		b.setState(StateOpen, now)
	}
}

// currentState 处理到期:CLOSED重置统计窗口,OPEN转HALF_OPEN
func (b *Breaker) currentState(now time.Time) (State, uint64) {
	switch b.state {
	case StateClosed:
		if !b.expiry.IsZero() && b.expiry.Before(now) {
			b.toNewGeneration(now)
		}
	case StateOpen:
		if b.expiry.Before(now) {
			b.setState(StateHalfOpen, now)
		}
	}
	return b.state, b.generation
}

func (b *Breaker) setState(state State, now time.Time) {
	if b.state == state {
		return
	}

	prev := b.state
	b.state = state
	b.toNewGeneration(now)

	if b.settings.OnStateChange != nil {
		b.settings.OnStateChange(b.settings.Name, prev, state)
	}
}

func (b *Breaker) toNewGeneration(now time.Time) {
	b.generation++
	b.counts = Counts{}

	switch b.state {
	case StateClosed:
		if b.settings.Interval > 0 {
			b.expiry = now.Add(b.settings.Interval)
		} else {
			b.expiry = time.Time{}
		}
	case StateOpen:
		b.expiry = now.Add(b.settings.Timeout)
	default:
		b.expiry = time.Time{}
	}
}
