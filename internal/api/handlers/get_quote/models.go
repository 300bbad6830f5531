package get_quote

import (
	"time"

	getBookingQuote "github.com/m04kA/SMC-SessionsService/internal/usecase/get_booking_quote"
)

// QuoteResponse HTTP response model
type QuoteResponse struct {
	QuoteID         string  `json:"quoteId"`
	ServiceID       int64   `json:"serviceId"`
	ProviderID      int64   `json:"providerId"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	DisplayPrice    float64 `json:"displayPrice"`
	ComputedAt      string  `json:"computedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBookingQuote.Response) *QuoteResponse {
	return &QuoteResponse{
		QuoteID:         resp.QuoteID,
		ServiceID:       resp.ServiceID,
		ProviderID:      resp.ProviderID,
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		Price:           resp.Price,
		DisplayPrice:    resp.DisplayPrice,
		ComputedAt:      resp.ComputedAt.Format(time.RFC3339),
	}
}
