package resilience

import (
	"context"

	"go.uber.org/zap"

	"whispr/pkg/logger"
)

const LogExecuting = "executing operation with resilience"

// ServiceResilience объединяет Circuit Breaker и повторные попытки для одного внешнего сервиса.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает обертку с настройками по умолчанию.
func NewServiceResilience(serviceName string) *ServiceResilience {
	return NewServiceResilienceWithConfig(serviceName, DefaultCircuitBreakerConfig(), DefaultRetryConfig())
}

// NewServiceResilienceWithConfig создает обертку с заданными настройками.
func NewServiceResilienceWithConfig(serviceName string, cb CircuitBreakerConfig, retry RetryConfig) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, cb),
		retry:          NewRetry(serviceName, retry),
	}
}

// Execute выполняет operation с повторными попытками внутри Circuit Breaker.
// Серия неудачных попыток учитывается как одна ошибка.
func (r *ServiceResilience) Execute(ctx context.Context, operationName string, operation func(ctx context.Context) error) error {
	logger.Log(ctx).Debug(ctx, LogExecuting,
		zap.String("service", r.serviceName),
		zap.String("operation", operationName))

	return r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, func() error {
			return operation(ctx)
		})
	})
}

// State возвращает состояние Circuit Breaker.
func (r *ServiceResilience) State() CircuitState {
	return r.circuitBreaker.State()
}
