package create_instant_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
	pricingRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/pricingrules"
	catalogClient "github.com/m04kA/SMC-SessionsService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SessionsService/internal/pricing"
)

// UseCase use case для создания мгновенной заявки.
// Окно ответа провайдера фиксируется при создании: expiresAt = createdAt + 30 минут
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

// Execute выполняет use case создания мгновенной заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateInstantBooking: client=%d, service=%d, duration=%d",
		req.ClientID, req.ServiceID, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateInstantBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateInstantBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateInstantBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateInstantBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	// 4. Подбираем правило ценообразования с учётом иерархии
	rule, err := uc.rulesRepo.GetRuleWithHierarchy(ctx, service.ProviderID, service.ID)
	if err != nil && !errors.Is(err, pricingRepo.ErrRuleNotFound) {
		uc.logger.Error("CreateInstantBooking: failed to get pricing rule for provider=%d: %v", service.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get pricing rule: %v", ErrInternal, err)
	}

	// 5. Фиксируем цену на момент создания.
	// Дальнейшие изменения базовой цены или множителей заявки не затрагивают
	calculator := pricing.NewCalculator(pricing.StrategyForRule(rule))
	price, err := calculator.Quote(service.BasePrice, service.BaseDurationMinutes, req.DurationMinutes, now)
	if err != nil {
		uc.logger.Warn("CreateInstantBooking: pricing failed for service=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Создаем заявку с зафиксированным окном ответа
	expiresAt := now.Add(domain.InstantExpiryWindow)
	booking := &domain.BookingRequest{
		ClientID:        req.ClientID,
		ProviderID:      service.ProviderID,
		ServiceID:       req.ServiceID,
		IsInstant:       true,
		DurationMinutes: req.DurationMinutes,
		Price:           price,
		Status:          domain.StatusPending,
		ServiceName:     service.Name,
		Notes:           req.Notes,
		ExpiresAt:       &expiresAt,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateInstantBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateInstantBooking: successfully created booking id=%d, expires_at=%s",
		created.ID, expiresAt.Format("2006-01-02T15:04:05Z07:00"))

	return &Response{
		ID:              created.ID,
		ClientID:        created.ClientID,
		ProviderID:      created.ProviderID,
		ServiceID:       created.ServiceID,
		IsInstant:       created.IsInstant,
		DurationMinutes: created.DurationMinutes,
		Price:           created.Price,
		DisplayPrice:    pricing.RoundDisplay(created.Price),
		Status:          string(created.Status),
		ServiceName:     created.ServiceName,
		Notes:           created.Notes,
		ExpiresAt:       created.ExpiresAt,
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}
