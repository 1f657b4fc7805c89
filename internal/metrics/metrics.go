// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// 上流クライアントとハンドラー層から利用する。
type MetricsCollector interface {
	RecordUpstreamStatus(resource string, statusCode int)
	RecordUpstreamLatency(resource string, duration time.Duration)
	RecordUpstreamFailure(resource string)
	RecordProxyError(resource string, statusCode int)
	RecordCoursesReshaped(count int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	upstreamStatus  *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	upstreamFail    *prometheus.CounterVec
	proxyErrors     *prometheus.CounterVec
	coursesReshaped prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		upstreamStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_gateway_upstream_status_total",
			Help: "上流APIのリソース・ステータスコード別レスポンス数",
		}, []string{"resource", "status_code"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admin_gateway_upstream_latency_seconds",
			Help:    "上流API呼び出しのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource"}),
		upstreamFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_gateway_upstream_fail_total",
			Help: "上流API呼び出し失敗（ネットワークエラー・デコード失敗）の合計数",
		}, []string{"resource"}),
		proxyErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_gateway_proxy_error_total",
			Help: "クライアントへ返却したエラーレスポンスの合計数",
		}, []string{"resource", "status_code"}),
		coursesReshaped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "admin_gateway_courses_reshaped_total",
			Help: "user構造へ整形したコースレコードの合計数",
		}),
	}

	reg.MustRegister(
		c.upstreamStatus,
		c.upstreamLatency,
		c.upstreamFail,
		c.proxyErrors,
		c.coursesReshaped,
	)

	return c
}

// RecordUpstreamStatus は上流レスポンスのステータスコードを記録する。
func (c *Collector) RecordUpstreamStatus(resource string, statusCode int) {
	c.upstreamStatus.WithLabelValues(resource, strconv.Itoa(statusCode)).Inc()
}

// RecordUpstreamLatency は上流呼び出しのレイテンシを記録する。
func (c *Collector) RecordUpstreamLatency(resource string, duration time.Duration) {
	c.upstreamLatency.WithLabelValues(resource).Observe(duration.Seconds())
}

// RecordUpstreamFailure は上流呼び出しの失敗を記録する。
// HTTPレスポンスを受け取れなかった場合（接続エラー、タイムアウト等）に使用する。
func (c *Collector) RecordUpstreamFailure(resource string) {
	c.upstreamFail.WithLabelValues(resource).Inc()
}

// RecordProxyError はクライアントへ返却したエラーレスポンスを記録する。
func (c *Collector) RecordProxyError(resource string, statusCode int) {
	c.proxyErrors.WithLabelValues(resource, strconv.Itoa(statusCode)).Inc()
}

// RecordCoursesReshaped は整形したコースレコード数を記録する。
func (c *Collector) RecordCoursesReshaped(count int) {
	c.coursesReshaped.Add(float64(count))
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
