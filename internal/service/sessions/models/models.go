package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid session status")
)

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID         int64 `json:"id"`
	BookingID  int64 `json:"bookingId"`
	ClientID   int64 `json:"clientId"`
	ProviderID int64 `json:"providerId"`
	ServiceID  int64 `json:"serviceId"`

	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`

	CanJoin       bool `json:"canJoin"`
	CanReschedule bool `json:"canReschedule"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionListResponse ответ со списком сессий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// JoinInfoResponse ответ о доступности подключения к сессии
type JoinInfoResponse struct {
	SessionID         int64   `json:"sessionId"`
	CanJoin           bool    `json:"canJoin"`
	MinutesUntilStart float64 `json:"minutesUntilStart"`
	Status            string  `json:"status"`
}

// FromDomainSession конвертирует domain модель в DTO
// Предикаты окон вычисляются на момент now
func FromDomainSession(s *domain.Session, now time.Time) *SessionResponse {
	if s == nil {
		return nil
	}

	return &SessionResponse{
		ID:            s.ID,
		BookingID:     s.BookingID,
		ClientID:      s.ClientID,
		ProviderID:    s.ProviderID,
		ServiceID:     s.ServiceID,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		Status:        string(s.Status),
		CanJoin:       s.CanJoin(now),
		CanReschedule: s.CanReschedule(now),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.Session, now time.Time) *SessionListResponse {
	if sessions == nil {
		return &SessionListResponse{
			Sessions: []SessionResponse{},
		}
	}

	resp := &SessionListResponse{
		Sessions: make([]SessionResponse, len(sessions)),
	}

	for i, s := range sessions {
		if sessionResp := FromDomainSession(s, now); sessionResp != nil {
			resp.Sessions[i] = *sessionResp
		}
	}

	return resp
}

// ToDomainSessionStatus конвертирует строку в domain.SessionStatus с валидацией
func ToDomainSessionStatus(status string) (domain.SessionStatus, error) {
	s := domain.SessionStatus(status)

	validStatuses := []domain.SessionStatus{
		domain.SessionScheduled,
		domain.SessionActive,
		domain.SessionCompleted,
		domain.SessionCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
