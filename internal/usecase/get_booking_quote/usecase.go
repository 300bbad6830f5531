package get_booking_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	catalogClient "github.com/m04kA/SMC-SessionsService/internal/integrations/catalogservice"
	pricingRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/pricingrules"
	"github.com/m04kA/SMC-SessionsService/internal/pricing"
)

// UseCase use case расчёта котировки.
// Котировка считается заново при каждом вызове и нигде не кэшируется:
// с динамическим множителем результат зависит от момента вычисления
type UseCase struct {
	catalogClient CatalogServiceClient
	rulesRepo     PricingRuleRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogClient CatalogServiceClient,
	rulesRepo PricingRuleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogClient: catalogClient,
		rulesRepo:     rulesRepo,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет расчёт котировки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBookingQuote: service=%d, duration=%d", req.ServiceID, req.DurationMinutes)

	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	// Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetBookingQuote: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetBookingQuote: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// Подбираем правило ценообразования с учётом иерархии
	// Отсутствие правила - не ошибка, применяется базовая цена без корректировки
	rule, err := uc.rulesRepo.GetRuleWithHierarchy(ctx, service.ProviderID, service.ID)
	if err != nil && !errors.Is(err, pricingRepo.ErrRuleNotFound) {
		uc.logger.Error("GetBookingQuote: failed to get pricing rule for provider=%d: %v", service.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get pricing rule: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	calculator := pricing.NewCalculator(pricing.StrategyForRule(rule))

	price, err := calculator.Quote(service.BasePrice, service.BaseDurationMinutes, req.DurationMinutes, now)
	if err != nil {
		uc.logger.Warn("GetBookingQuote: pricing failed for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	quoteID := uuid.NewString()
	uc.logger.Info("GetBookingQuote: quote=%s service=%d duration=%d price=%f", quoteID, req.ServiceID, req.DurationMinutes, price)

	return &Response{
		QuoteID:         quoteID,
		ServiceID:       service.ID,
		ProviderID:      service.ProviderID,
		ServiceName:     service.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           price,
		DisplayPrice:    pricing.RoundDisplay(price),
		ComputedAt:      now,
	}, nil
}
