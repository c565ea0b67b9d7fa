// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 外部ID参照の結果ラベル。
const (
	LookupFound    = "found"
	LookupNotFound = "not_found"
	LookupError    = "error"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェアやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
	RecordIdentityLookup(outcome string, duration time.Duration)
	RecordCommentWrite(operation, outcome string)
	RecordRateLimited(scope string)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	identityLookups *prometheus.CounterVec
	identityLatency prometheus.Histogram
	commentWrites   *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vidtalk_http_requests_total",
			Help: "ルート・メソッド・ステータスコード別のリクエスト数",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vidtalk_http_request_duration_seconds",
			Help:    "リクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		identityLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vidtalk_identity_lookups_total",
			Help: "外部ID参照の結果別件数",
		}, []string{"outcome"}),
		identityLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vidtalk_identity_lookup_latency_seconds",
			Help:    "外部ID参照のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		commentWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vidtalk_comment_writes_total",
			Help: "コメント書き込み操作の結果別件数",
		}, []string{"operation", "outcome"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vidtalk_rate_limited_total",
			Help: "レート制限で拒否されたリクエスト数",
		}, []string{"scope"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.identityLookups,
		c.identityLatency,
		c.commentWrites,
		c.rateLimited,
	)

	return c
}

// RecordHTTPRequest はリクエストの件数と処理時間を記録する。
// routeにはchiのルートパターンを渡し、ラベルの種類数を抑える。
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordIdentityLookup は外部ID参照の結果とレイテンシを記録する。
func (c *Collector) RecordIdentityLookup(outcome string, duration time.Duration) {
	c.identityLookups.WithLabelValues(outcome).Inc()
	c.identityLatency.Observe(duration.Seconds())
}

// RecordCommentWrite はコメントの作成・更新・削除の結果を記録する。
func (c *Collector) RecordCommentWrite(operation, outcome string) {
	c.commentWrites.WithLabelValues(operation, outcome).Inc()
}

// RecordRateLimited はレート制限による拒否を記録する。
func (c *Collector) RecordRateLimited(scope string) {
	c.rateLimited.WithLabelValues(scope).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop は何も記録しないMetricsCollector。テストやメトリクス無効時に使う。
type Nop struct{}

func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Nop) RecordIdentityLookup(string, time.Duration)           {}
func (Nop) RecordCommentWrite(string, string)                    {}
func (Nop) RecordRateLimited(string)                             {}

var (
	_ MetricsCollector = (*Collector)(nil)
	_ MetricsCollector = Nop{}
)
