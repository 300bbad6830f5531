package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
	"github.com/m04kA/SMC-SessionsService/internal/pricing"
	"github.com/m04kA/SMC-SessionsService/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetClientBookingsRequest запрос на получение заявок клиента
type GetClientBookingsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetProviderBookingsRequest запрос на получение заявок провайдера
type GetProviderBookingsRequest struct {
	UserID          int64      `json:"userId"`
	ProviderID      int64      `json:"providerId"`
	ServiceID       *int64     `json:"serviceId,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	OnlyPending     bool       `json:"onlyPending,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetProviderBookingsRequest) ToDomainFilter() (domain.ProviderBookingsFilter, error) {
	filter := domain.ProviderBookingsFilter{
		ProviderID:      r.ProviderID,
		ServiceID:       r.ServiceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		OnlyPending:     r.OnlyPending,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными заявки.
// Status - эффективный статус с учётом производного истечения,
// Price - неокруглённое персистентное значение, DisplayPrice - для отображения
type BookingResponse struct {
	ID         int64 `json:"id"`
	ClientID   int64 `json:"clientId"`
	ProviderID int64 `json:"providerId"`
	ServiceID  int64 `json:"serviceId"`

	IsInstant       bool    `json:"isInstant"`
	RequestedTime   *string `json:"requestedTime,omitempty"` // ISO 8601
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	DisplayPrice    float64 `json:"displayPrice"`
	Status          string  `json:"status"`

	ServiceName string  `json:"serviceName"`
	Notes       *string `json:"notes,omitempty"`

	RespondedAt      *string `json:"respondedAt,omitempty"`      // ISO 8601
	ExpiresAt        *string `json:"expiresAt,omitempty"`        // ISO 8601, только мгновенные
	AcceptedDeadline *string `json:"acceptedDeadline,omitempty"` // ISO 8601, дедлайн подключения после принятия

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком заявок
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO.
// Статус вычисляется на момент now, чтобы читатели видели истечение
// даже до ленивой записи в хранилище
func FromDomainBooking(b *domain.BookingRequest, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		ClientID:        b.ClientID,
		ProviderID:      b.ProviderID,
		ServiceID:       b.ServiceID,
		IsInstant:       b.IsInstant,
		DurationMinutes: b.DurationMinutes,
		Price:           b.Price,
		DisplayPrice:    pricing.RoundDisplay(b.Price),
		Status:          string(b.EffectiveStatus(now)),
		ServiceName:     b.ServiceName,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.RequestedTime != nil {
		resp.RequestedTime = ptr.Ptr(b.RequestedTime.Format(time.RFC3339))
	}
	if b.RespondedAt != nil {
		resp.RespondedAt = ptr.Ptr(b.RespondedAt.Format(time.RFC3339))
	}
	if b.ExpiresAt != nil {
		resp.ExpiresAt = ptr.Ptr(b.ExpiresAt.Format(time.RFC3339))
	}
	if deadline := b.AcceptedDeadline(); deadline != nil {
		resp.AcceptedDeadline = ptr.Ptr(deadline.Format(time.RFC3339))
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.BookingRequest, now time.Time) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией.
// Единственная каноническая форма статусов - lowercase
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusAccepted,
		domain.StatusDeclined,
		domain.StatusExpired,
		domain.StatusCompleted,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
