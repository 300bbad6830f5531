package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SessionsService/internal/service/bookings/models"
)

// Service сервис чтения заявок.
// Применяет производное истечение на каждом чтении и лениво
// фиксирует его в хранилище, чтобы все клиенты сходились к одному виду
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает заявку по ID
// Заявка видна только её клиенту и провайдеру услуги
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.ClientID != userID && booking.ProviderID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now()
	s.persistDerivedExpiry(ctx, booking)

	return models.FromDomainBooking(booking, now), nil
}

// GetClientBookings получает историю заявок клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	for _, booking := range bookings {
		s.persistDerivedExpiry(ctx, booking)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings, now), nil
}

// GetProviderBookings получает заявки провайдера с гибкой фильтрацией
// Доступно только самому провайдеру
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetProviderBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetProviderBookings: fetching bookings for provider=%d, user=%d", req.ProviderID, req.UserID)

	if req.UserID != req.ProviderID {
		s.logger.Warn("GetProviderBookings: access denied for user=%d to provider=%d bookings", req.UserID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	for _, booking := range bookings {
		s.persistDerivedExpiry(ctx, booking)
	}

	s.logger.Info("GetProviderBookings: successfully fetched %d bookings for provider=%d", len(bookings), req.ProviderID)
	return models.FromDomainBookingList(bookings, now), nil
}

// persistDerivedExpiry лениво записывает истечение, если читатель его наблюдает.
// Запись best-effort: условный UPDATE исключает расхождения при конкурентных
// читателях, а неудача не мешает вернуть производный вид
func (s *Service) persistDerivedExpiry(ctx context.Context, booking *domain.BookingRequest) {
	if !booking.IsExpired(s.timeProvider.Now()) {
		return
	}

	if err := s.bookingRepo.MarkExpired(ctx, booking.ID); err != nil {
		if errors.Is(err, bookingRepo.ErrNothingToExpire) {
			// Другой читатель успел первым или окно посчитано заново - не ошибка
			return
		}
		s.logger.Warn("persistDerivedExpiry: failed to persist expiry for booking id=%d: %v", booking.ID, err)
	}
}
