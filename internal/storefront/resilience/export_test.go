package resilience

import "time"

// NewCircuitBreakerWithClock открывает управляемые часы для тестов.
func NewCircuitBreakerWithClock(name string, config CircuitBreakerConfig, now func() time.Time) *CircuitBreaker {
	return newCircuitBreaker(name, config, now)
}
