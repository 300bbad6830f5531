package respond_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/booking"
)

// UseCase use case для ответа провайдера на заявку.
// Использует сериализуемую транзакцию: при параллельных accept и decline
// на одну заявку ровно один ответ выигрывает, второй получает конфликт статуса
type UseCase struct {
	bookingRepo  BookingRepository
	sessionRepo  SessionRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	sessionRepo SessionRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		sessionRepo:  sessionRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case ответа на заявку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RespondBooking: booking=%d, user=%d, action=%s", req.BookingID, req.UserID, req.Action)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RespondBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.BookingRequest
	var createdSession *domain.Session

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем заявку с блокировкой (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RespondBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RespondBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3.2. Отвечать может только провайдер, владеющий услугой
		if booking.ProviderID != req.UserID {
			uc.logger.Warn("RespondBooking: user id=%d is not the provider of booking id=%d",
				req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		// 3.3. Проверяем истечение окна ответа внутри той же транзакции.
		// Запоздалое принятие истёкшей мгновенной заявки недопустимо
		if booking.Status == domain.StatusPending && booking.IsExpired(now) {
			if err := uc.bookingRepo.MarkExpired(txCtx, booking.ID); err != nil &&
				!errors.Is(err, bookingRepo.ErrNothingToExpire) {
				uc.logger.Error("RespondBooking: failed to mark booking id=%d expired: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to mark booking expired: %v", ErrInternal, err)
			}
			uc.logger.Warn("RespondBooking: booking id=%d response window has lapsed", booking.ID)
			return ErrBookingExpired
		}

		if !booking.CanRespond() {
			uc.logger.Warn("RespondBooking: booking id=%d is already %s", booking.ID, booking.Status)
			return ErrStatusConflict
		}

		// 3.4. Переводим статус условной записью (WHERE status = 'pending').
		// Ноль затронутых строк означает проигранную гонку
		newStatus := domain.StatusAccepted
		if req.Action == ActionDecline {
			newStatus = domain.StatusDeclined
		}

		if err := uc.bookingRepo.UpdateStatusIfPending(txCtx, booking.ID, newStatus, now); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				uc.logger.Warn("RespondBooking: booking id=%d lost the status race", booking.ID)
				return ErrStatusConflict
			}
			uc.logger.Error("RespondBooking: failed to update status of booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		booking.Status = newStatus
		booking.RespondedAt = &now

		// 3.5. При принятии создаем сессию
		if newStatus == domain.StatusAccepted {
			session, err := uc.createSession(txCtx, booking, now)
			if err != nil {
				return err
			}
			createdSession = session
		}

		result = booking
		return nil
	})

	if err != nil {
		// Ошибки домена пробрасываем как есть, остальное заворачиваем
		if isDomainError(err) {
			return nil, err
		}
		uc.logger.Error("RespondBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("RespondBooking: booking id=%d is now %s", result.ID, result.Status)

	resp := &Response{
		ID:               result.ID,
		ClientID:         result.ClientID,
		ProviderID:       result.ProviderID,
		ServiceID:        result.ServiceID,
		IsInstant:        result.IsInstant,
		Status:           string(result.Status),
		RespondedAt:      result.RespondedAt,
		AcceptedDeadline: result.AcceptedDeadline(),
	}

	if createdSession != nil {
		resp.Session = &SessionInfo{
			ID:        createdSession.ID,
			StartTime: createdSession.StartTime,
			EndTime:   createdSession.EndTime,
			Status:    string(createdSession.Status),
		}
	}

	return resp, nil
}

// createSession создает сессию из принятой заявки.
// Запланированная заявка дает scheduled сессию на запрошенное время,
// мгновенная - active сессию, начинающуюся немедленно
func (uc *UseCase) createSession(ctx context.Context, booking *domain.BookingRequest, now time.Time) (*domain.Session, error) {
	startTime := now
	status := domain.SessionActive
	if !booking.IsInstant {
		if booking.RequestedTime == nil {
			uc.logger.Error("RespondBooking: scheduled booking id=%d has no requested time", booking.ID)
			return nil, fmt.Errorf("%w: scheduled booking has no requested time", ErrInternal)
		}
		startTime = *booking.RequestedTime
		status = domain.SessionScheduled
	}

	session := &domain.Session{
		BookingID:  booking.ID,
		ClientID:   booking.ClientID,
		ProviderID: booking.ProviderID,
		ServiceID:  booking.ServiceID,
		StartTime:  startTime,
		EndTime:    startTime.Add(time.Duration(booking.DurationMinutes) * time.Minute),
		Status:     status,
	}

	created, err := uc.sessionRepo.Create(ctx, session)
	if err != nil {
		uc.logger.Error("RespondBooking: failed to create session for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
	}

	uc.logger.Info("RespondBooking: created session id=%d for booking id=%d", created.ID, booking.ID)
	return created, nil
}

// isDomainError сообщает, относится ли ошибка к ожидаемым исходам usecase
func isDomainError(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrBookingExpired) ||
		errors.Is(err, ErrStatusConflict) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInternal)
}
