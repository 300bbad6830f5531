package create_scheduled_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
	"github.com/m04kA/SMC-SessionsService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.BookingRequest) (*domain.BookingRequest, error)
}

// PricingRuleRepository интерфейс репозитория правил ценообразования
type PricingRuleRepository interface {
	GetRuleWithHierarchy(ctx context.Context, providerID int64, serviceID int64) (*domain.PricingRule, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
