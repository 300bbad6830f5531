package reschedule_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/session"
)

// UseCase use case для переноса сессии.
// Временное окно проверяется дважды: в коде до записи и повторно
// в SQL-предикате условного UPDATE, чтобы исключить гонку между
// проверкой и записью
type UseCase struct {
	sessionRepo  SessionRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса сессии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleSession: session=%d, user=%d, newStart=%s",
		req.SessionID, req.UserID, req.NewStartTime.Format("2006-01-02T15:04:05Z07:00"))

	// 1. Валидация входных данных
	if req.SessionID <= 0 {
		return nil, fmt.Errorf("%w: sessionID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.NewStartTime.IsZero() {
		return nil, fmt.Errorf("%w: newStartTime is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if !req.NewStartTime.After(now) {
		uc.logger.Warn("RescheduleSession: new start time %s is not in the future",
			req.NewStartTime.Format("2006-01-02T15:04:05Z07:00"))
		return nil, ErrTimeInPast
	}

	var result *domain.Session

	// 3. Выполняем операции с БД в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем сессию с блокировкой (FOR UPDATE)
		session, err := uc.sessionRepo.GetByID(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("RescheduleSession: session id=%d not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("RescheduleSession: failed to get session id=%d: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		// 3.2. Переносить может любой из участников
		if session.ClientID != req.UserID && session.ProviderID != req.UserID {
			uc.logger.Warn("RescheduleSession: user id=%d is not a participant of session id=%d",
				req.UserID, req.SessionID)
			return ErrAccessDenied
		}

		// 3.3. Предварительная проверка окна переноса
		if !session.CanReschedule(now) {
			uc.logger.Warn("RescheduleSession: session id=%d is locked (status=%s, start=%s)",
				session.ID, session.Status, session.StartTime.Format("2006-01-02T15:04:05Z07:00"))
			return ErrRescheduleLocked
		}

		// 3.4. Длительность сессии сохраняется
		duration := session.EndTime.Sub(session.StartTime)
		newEnd := req.NewStartTime.Add(duration)

		// 3.5. Условная запись: предикат окна повторяется в SQL
		if err := uc.sessionRepo.Reschedule(txCtx, session.ID, req.NewStartTime, newEnd); err != nil {
			if errors.Is(err, sessionRepo.ErrRescheduleConflict) {
				uc.logger.Warn("RescheduleSession: session id=%d lost the reschedule race", session.ID)
				return ErrRescheduleLocked
			}
			uc.logger.Error("RescheduleSession: failed to reschedule session id=%d: %v", session.ID, err)
			return fmt.Errorf("%w: failed to reschedule session: %v", ErrInternal, err)
		}

		session.StartTime = req.NewStartTime
		session.EndTime = newEnd
		result = session
		return nil
	})

	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		uc.logger.Error("RescheduleSession: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("RescheduleSession: session id=%d moved to %s",
		result.ID, result.StartTime.Format("2006-01-02T15:04:05Z07:00"))

	return &Response{
		ID:         result.ID,
		BookingID:  result.BookingID,
		ClientID:   result.ClientID,
		ProviderID: result.ProviderID,
		ServiceID:  result.ServiceID,
		StartTime:  result.StartTime,
		EndTime:    result.EndTime,
		Status:     string(result.Status),
		UpdatedAt:  result.UpdatedAt,
	}, nil
}

// isDomainError сообщает, относится ли ошибка к ожидаемым исходам usecase
func isDomainError(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrTimeInPast) ||
		errors.Is(err, ErrRescheduleLocked) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInternal)
}
