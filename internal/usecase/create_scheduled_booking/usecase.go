package create_scheduled_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
	pricingRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/pricingrules"
	catalogClient "github.com/m04kA/SMC-SessionsService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SessionsService/internal/pricing"
)

// UseCase use case для создания запланированной заявки.
// В отличие от мгновенных заявок окно ответа не фиксируется:
// запланированные заявки не истекают
type UseCase struct {
	bookingRepo   BookingRepository
	rulesRepo     PricingRuleRepository
	catalogClient CatalogServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rulesRepo PricingRuleRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		rulesRepo:     rulesRepo,
		catalogClient: catalogClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания запланированной заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateScheduledBooking: client=%d, service=%d, time=%s, duration=%d",
		req.ClientID, req.ServiceID, req.RequestedTime.Format("2006-01-02T15:04:05Z07:00"), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateScheduledBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что запрошенное время строго в будущем
	if err := validateRequestedTime(req.RequestedTime, now); err != nil {
		uc.logger.Warn("CreateScheduledBooking: requested time %s is not in the future",
			req.RequestedTime.Format("2006-01-02T15:04:05Z07:00"))
		return nil, err
	}

	// 4. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateScheduledBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateScheduledBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateScheduledBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 5. Подбираем правило ценообразования с учётом иерархии
	rule, err := uc.rulesRepo.GetRuleWithHierarchy(ctx, service.ProviderID, service.ID)
	if err != nil && !errors.Is(err, pricingRepo.ErrRuleNotFound) {
		uc.logger.Error("CreateScheduledBooking: failed to get pricing rule for provider=%d: %v", service.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get pricing rule: %v", ErrInternal, err)
	}

	// 6. Фиксируем цену на момент создания, пересчёта при принятии не будет
	calculator := pricing.NewCalculator(pricing.StrategyForRule(rule))
	price, err := calculator.Quote(service.BasePrice, service.BaseDurationMinutes, req.DurationMinutes, now)
	if err != nil {
		uc.logger.Warn("CreateScheduledBooking: pricing failed for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 7. Создаем заявку
	booking := &domain.BookingRequest{
		ClientID:        req.ClientID,
		ProviderID:      service.ProviderID,
		ServiceID:       req.ServiceID,
		IsInstant:       false,
		RequestedTime:   &req.RequestedTime,
		DurationMinutes: req.DurationMinutes,
		Price:           price,
		Status:          domain.StatusPending,
		ServiceName:     service.Name,
		Notes:           req.Notes,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateScheduledBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateScheduledBooking: successfully created booking id=%d", created.ID)

	return &Response{
		ID:              created.ID,
		ClientID:        created.ClientID,
		ProviderID:      created.ProviderID,
		ServiceID:       created.ServiceID,
		IsInstant:       created.IsInstant,
		RequestedTime:   created.RequestedTime,
		DurationMinutes: created.DurationMinutes,
		Price:           created.Price,
		DisplayPrice:    pricing.RoundDisplay(created.Price),
		Status:          string(created.Status),
		ServiceName:     created.ServiceName,
		Notes:           created.Notes,
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}
