package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-SessionsService/internal/infra/storage/session"
	"github.com/m04kA/SMC-SessionsService/internal/service/sessions/models"
)

// Service сервис для работы с сессиями
type Service struct {
	sessionRepo  SessionRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	sessionRepo SessionRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:  sessionRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает сессию по ID
// Сессия видна только её участникам (клиенту и провайдеру)
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching session id=%d for user=%d", id, userID)

	session, err := s.getWithAccessCheck(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSession(session, s.timeProvider.Now()), nil
}

// GetUserSessions получает сессии пользователя (как клиента и как провайдера)
// Опционально фильтрует по статусу
func (s *Service) GetUserSessions(ctx context.Context, userID int64, status *string) (*models.SessionListResponse, error) {
	s.logger.Info("GetUserSessions: fetching sessions for user=%d, status=%v", userID, status)

	var domainStatus *domain.SessionStatus
	if status != nil {
		st, err := models.ToDomainSessionStatus(*status)
		if err != nil {
			s.logger.Warn("GetUserSessions: invalid status=%s for user=%d", *status, userID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &st
	}

	sessions, err := s.sessionRepo.GetByParticipant(ctx, userID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserSessions: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserSessions: successfully fetched %d sessions for user=%d", len(sessions), userID)
	return models.FromDomainSessionList(sessions, s.timeProvider.Now()), nil
}

// JoinInfo возвращает доступность подключения к сессии на текущий момент.
// Подключение открыто за 15 минут до начала и до завершения сессии -
// верхней границы после старта нет, сессии не закрываются автоматически
func (s *Service) JoinInfo(ctx context.Context, id int64, userID int64) (*models.JoinInfoResponse, error) {
	s.logger.Info("JoinInfo: checking join eligibility for session id=%d, user=%d", id, userID)

	session, err := s.getWithAccessCheck(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	return &models.JoinInfoResponse{
		SessionID:         session.ID,
		CanJoin:           session.CanJoin(now),
		MinutesUntilStart: session.MinutesUntilStart(now),
		Status:            string(session.Status),
	}, nil
}

// Complete помечает сессию завершённой
// Доступно только провайдеру; заявка завершается в той же транзакции
func (s *Service) Complete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Complete: completing session id=%d by user=%d", id, userID)

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("Complete: session id=%d not found", id)
			return ErrSessionNotFound
		}
		s.logger.Error("Complete: repository error for session id=%d: %v", id, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	if session.ProviderID != userID {
		s.logger.Warn("Complete: access denied for user=%d to session id=%d", userID, id)
		return ErrAccessDenied
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		allowedFrom := []domain.SessionStatus{domain.SessionScheduled, domain.SessionActive}
		if err := s.sessionRepo.UpdateStatus(txCtx, id, domain.SessionCompleted, allowedFrom); err != nil {
			if errors.Is(err, sessionRepo.ErrStatusConflict) {
				return ErrStatusConflict
			}
			return fmt.Errorf("%w: Complete - update session status: %v", ErrInternal, err)
		}

		if err := s.bookingRepo.MarkCompleted(txCtx, session.BookingID); err != nil {
			// Заявка могла истечь до завершения - сессия всё равно завершается
			s.logger.Warn("Complete: booking id=%d not completed: %v", session.BookingID, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrStatusConflict) {
			s.logger.Warn("Complete: session id=%d already finished", id)
			return ErrStatusConflict
		}
		s.logger.Error("Complete: transaction error for session id=%d: %v", id, err)
		return err
	}

	s.logger.Info("Complete: successfully completed session id=%d", id)
	return nil
}

// getWithAccessCheck получает сессию и проверяет, что пользователь - её участник
func (s *Service) getWithAccessCheck(ctx context.Context, id int64, userID int64) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("getWithAccessCheck: session id=%d not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("getWithAccessCheck: repository error for session id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if session.ClientID != userID && session.ProviderID != userID {
		s.logger.Warn("getWithAccessCheck: access denied for user=%d to session id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return session, nil
}
