package apiclient

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты запросов для метрик.
const (
	OutcomeSuccess      = "success"
	OutcomeHTTPError    = "http_error"
	OutcomeAuthExpired  = "auth_expired"
	OutcomeNetworkError = "network_error"
	OutcomeError        = "error"
)

// Результаты обновления токена для метрик.
const (
	refreshSuccess = "success"
	refreshFailure = "failure"
	refreshMissing = "missing"
)

// Metrics - счетчики клиента. Nil-значение допустимо и ничего не считает.
type Metrics struct {
	Requests  *prometheus.CounterVec
	Refreshes *prometheus.CounterVec
}

// NewMetrics создает счетчики и регистрирует их в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "api_client",
			Name:      "requests_total",
			Help:      "API requests by method and final outcome.",
		}, []string{"method", "outcome"}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "api_client",
			Name:      "token_refreshes_total",
			Help:      "Access token refresh exchanges by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.Requests, m.Refreshes)
	return m
}

func (m *Metrics) observeRequest(method string, err error) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, outcomeOf(err)).Inc()
}

func (m *Metrics) observeRefresh(result string) {
	if m == nil {
		return
	}
	m.Refreshes.WithLabelValues(result).Inc()
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	if errors.Is(err, ErrAuthExpired) {
		return OutcomeAuthExpired
	}
	if errors.Is(err, ErrNetwork) {
		return OutcomeNetworkError
	}
	if _, ok := AsHTTPError(err); ok {
		return OutcomeHTTPError
	}
	return OutcomeError
}
