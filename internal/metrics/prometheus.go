package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

var (
	// HTTPRequestsTotal 는 method, path, status 별 요청 수다.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration 는 method, path 별 요청 지연이다.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight 는 처리 중인 요청 수다.
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current in-flight requests",
		},
	)

	// ModelCallsTotal 는 외부 모델 호출 결과별 횟수다.
	ModelCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemini_calls_total",
			Help: "Total generative model invocations by outcome",
		},
		[]string{"outcome"},
	)

	// ModelCallDuration 는 외부 모델 호출 지연이다.
	ModelCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gemini_call_duration_seconds",
			Help:    "Generative model invocation latency",
			Buckets: []float64{.25, .5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"outcome"},
	)

	// ModelTokensTotal 는 방향(input/output)별 누적 토큰이다.
	ModelTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemini_tokens_total",
			Help: "Total tokens reported by the generative model",
		},
		[]string{"direction"},
	)

	// RateLimitRejectedTotal 는 요청 제한으로 거절된 요청 수다.
	RateLimitRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limit_rejected_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPRequestsInFlight,
		ModelCallsTotal,
		ModelCallDuration,
		ModelTokensTotal,
		RateLimitRejectedTotal,
	)
}
