package reschedule_session

import (
	"time"

	rescheduleSession "github.com/m04kA/SMC-SessionsService/internal/usecase/reschedule_session"
)

// RescheduleSessionRequest HTTP request model
type RescheduleSessionRequest struct {
	NewStartTime string `json:"newStartTime"` // ISO 8601
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID         int64  `json:"id"`
	BookingID  int64  `json:"bookingId"`
	ClientID   int64  `json:"clientId"`
	ProviderID int64  `json:"providerId"`
	ServiceID  int64  `json:"serviceId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`
	UpdatedAt  string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом времени)
func (r *RescheduleSessionRequest) ToUseCaseRequest(sessionID, userID int64) (*rescheduleSession.Request, error) {
	newStartTime, err := time.Parse(time.RFC3339, r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleSession.Request{
		SessionID:    sessionID,
		UserID:       userID,
		NewStartTime: newStartTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleSession.Response) *SessionResponse {
	return &SessionResponse{
		ID:         resp.ID,
		BookingID:  resp.BookingID,
		ClientID:   resp.ClientID,
		ProviderID: resp.ProviderID,
		ServiceID:  resp.ServiceID,
		StartTime:  resp.StartTime.Format(time.RFC3339),
		EndTime:    resp.EndTime.Format(time.RFC3339),
		Status:     resp.Status,
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
