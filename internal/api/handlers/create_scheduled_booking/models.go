package create_scheduled_booking

import (
	"time"

	createScheduledBooking "github.com/m04kA/SMC-SessionsService/internal/usecase/create_scheduled_booking"
)

// CreateScheduledBookingRequest HTTP request model
type CreateScheduledBookingRequest struct {
	ServiceID       int64   `json:"serviceId"`
	RequestedTime   string  `json:"requestedTime"` // ISO 8601
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
	RequestedTime   *string `json:"requestedTime,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	DisplayPrice    float64 `json:"displayPrice"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом времени)
func (r *CreateScheduledBookingRequest) ToUseCaseRequest(clientID int64) (*createScheduledBooking.Request, error) {
	requestedTime, err := time.Parse(time.RFC3339, r.RequestedTime)
	if err != nil {
		return nil, err
	}

	return &createScheduledBooking.Request{
		ClientID:        clientID,
		ServiceID:       r.ServiceID,
		RequestedTime:   requestedTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createScheduledBooking.Response) *BookingResponse {
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

	if resp.RequestedTime != nil {
		s := resp.RequestedTime.Format(time.RFC3339)
		out.RequestedTime = &s
	}

	return out
}
