package respond_booking

import (
	"time"

	respondBooking "github.com/m04kA/SMC-SessionsService/internal/usecase/respond_booking"
)

// RespondBookingRequest HTTP request model
type RespondBookingRequest struct {
	Action string `json:"action"` // accept или decline
}

// SessionResponse данные о созданной сессии
type SessionResponse struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// RespondBookingResponse HTTP response model
type RespondBookingResponse struct {
	ID               int64            `json:"id"`
	ClientID         int64            `json:"clientId"`
	ProviderID       int64            `json:"providerId"`
	ServiceID        int64            `json:"serviceId"`
	IsInstant        bool             `json:"isInstant"`
	Status           string           `json:"status"`
	RespondedAt      *string          `json:"respondedAt,omitempty"`
	AcceptedDeadline *string          `json:"acceptedDeadline,omitempty"`
	Session          *SessionResponse `json:"session,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *respondBooking.Response) *RespondBookingResponse {
	out := &RespondBookingResponse{
		ID:         resp.ID,
		ClientID:   resp.ClientID,
		ProviderID: resp.ProviderID,
		ServiceID:  resp.ServiceID,
		IsInstant:  resp.IsInstant,
		Status:     resp.Status,
	}

	if resp.RespondedAt != nil {
		s := resp.RespondedAt.Format(time.RFC3339)
		out.RespondedAt = &s
	}
	if resp.AcceptedDeadline != nil {
		s := resp.AcceptedDeadline.Format(time.RFC3339)
		out.AcceptedDeadline = &s
	}
	if resp.Session != nil {
		out.Session = &SessionResponse{
			ID:        resp.Session.ID,
			StartTime: resp.Session.StartTime.Format(time.RFC3339),
			EndTime:   resp.Session.EndTime.Format(time.RFC3339),
			Status:    resp.Session.Status,
		}
	}

	return out
}
