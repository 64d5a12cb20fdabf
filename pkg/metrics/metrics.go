// Package metrics Prometheus指标
//
// 所有指标在包初始化时通过promauto注册到默认Registry,
// 由HTTP层的Handler()暴露给Prometheus抓取(默认路径/metrics)。
//
// 指标分三类:
//   - HTTP:请求数、耗时、处理中的请求数(由中间件记录)
//   - 业务:加购、购买记录变更
//   - 依赖:缓存命中率、熔断器状态、事件发布结果
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookshop"

var (
	// HTTPRequestsTotal HTTP请求总数
	// path使用路由模板(如/users/:userId/cart),避免标签基数爆炸
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时(秒)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时（秒）",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_progress",
			Help:      "正在处理的HTTP请求数",
		},
	)

	// CartItemsAddedTotal 加购次数
	// result: success | failure
	CartItemsAddedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_items_added_total",
			Help:      "加购次数",
		},
		[]string{"result"},
	)

	// PurchaseEntriesTotal 购买记录变更次数
	// op: add | update | remove
	PurchaseEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchase_entries_total",
			Help:      "购买记录变更次数",
		},
		[]string{"op"},
	)

	// CacheRequests 缓存查询次数
	// result: hit | miss
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "缓存查询次数",
		},
		[]string{"cache", "result"},
	)

	// CircuitBreakerState 熔断器状态:0=closed, 1=open, 2=half-open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "熔断器状态（0=closed, 1=open, 2=half-open）",
		},
		[]string{"name"},
	)

	// EventsPublishedTotal 领域事件发布次数
	// result: success | failure
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "领域事件发布次数",
		},
		[]string{"routing_key", "result"},
	)
)

// Result 把err转换为result标签值
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// Handler 暴露默认Registry的指标
func Handler() http.Handler {
	return promhttp.Handler()
}
