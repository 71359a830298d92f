// Package metrics 定义服务暴露给 Prometheus 的指标。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SearchRequests 按数据源与结果统计检索请求
	SearchRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curalink_search_requests_total",
			Help: "Search requests by source and outcome.",
		},
		[]string{"source", "outcome"},
	)

	// UpstreamLatency 记录外部 API 调用耗时
	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curalink_upstream_request_duration_seconds",
			Help:    "Latency of outbound calls to PubMed, ClinicalTrials.gov and the summarizer.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream", "operation"},
	)

	// Summaries 统计摘要生成成功与回退次数
	Summaries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curalink_summaries_total",
			Help: "Summarization attempts by outcome (ok or placeholder).",
		},
		[]string{"outcome"},
	)

	// Persisted 统计落库结果：inserted / existing / failed
	Persisted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curalink_records_persisted_total",
			Help: "Enriched records persistence attempts by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	// HTTPRequests 按路由与状态码统计 HTTP 请求
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curalink_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		},
		[]string{"route", "method", "status"},
	)
)

func init() {
	prometheus.MustRegister(SearchRequests, UpstreamLatency, Summaries, Persisted, HTTPRequests)
}

// ObserveUpstream 记录一次外部调用耗时，配合 defer 使用：
//
//	defer metrics.ObserveUpstream("pubmed", "esearch", time.Now())
func ObserveUpstream(upstream, operation string, start time.Time) {
	UpstreamLatency.WithLabelValues(upstream, operation).Observe(time.Since(start).Seconds())
}
