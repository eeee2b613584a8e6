package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector 指标收集器
type Collector struct {
	// HTTP 指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// 支付指标
	paymentSettlementsTotal *prometheus.CounterVec
	paymentAmountTotal      prometheus.Counter
}

// NewCollector 创建指标收集器
func NewCollector() *Collector {
	return &Collector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		paymentSettlementsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_settlements_total",
				Help: "Total number of payment settlements by outcome",
			},
			[]string{"outcome"}, // paid / failed
		),

		paymentAmountTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payment_amount_total",
				Help: "Cumulative settled payment amount",
			},
		),
	}
}

// RecordHTTPRequest 记录一次 HTTP 请求
func (c *Collector) RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSettlement 记录一次结算结果
func (c *Collector) RecordSettlement(outcome string, amount float64) {
	c.paymentSettlementsTotal.WithLabelValues(outcome).Inc()
	if outcome == "paid" {
		c.paymentAmountTotal.Add(amount)
	}
}

// Default 全局收集器实例
var Default = NewCollector()
