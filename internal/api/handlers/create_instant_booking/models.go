package create_instant_booking

import (
	"time"

	createInstantBooking "github.com/m04kA/SMC-SessionsService/internal/usecase/create_instant_booking"
)

// CreateInstantBookingRequest HTTP request model
type CreateInstantBookingRequest struct {
	ServiceID       int64   `json:"serviceId"`
	DurationMinutes int     `json:"durationMinutes"`
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	ProviderID      int64   `json:"providerId"`
	ServiceID       int64   `json:"serviceId"`
	IsInstant       bool    `json:"isInstant"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	DisplayPrice    float64 `json:"displayPrice"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	Notes           *string `json:"notes,omitempty"`
	ExpiresAt       *string `json:"expiresAt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateInstantBookingRequest) ToUseCaseRequest(clientID int64) *createInstantBooking.Request {
	return &createInstantBooking.Request{
		ClientID:        clientID,
		ServiceID:       r.ServiceID,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createInstantBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		ProviderID:      resp.ProviderID,
		ServiceID:       resp.ServiceID,
		IsInstant:       resp.IsInstant,
		DurationMinutes: resp.DurationMinutes,
		Price:           resp.Price,
		DisplayPrice:    resp.DisplayPrice,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.ExpiresAt != nil {
		s := resp.ExpiresAt.Format(time.RFC3339)
		out.ExpiresAt = &s
	}

	return out
}
