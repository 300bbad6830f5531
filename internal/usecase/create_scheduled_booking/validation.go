package create_scheduled_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SessionsService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.RequestedTime.IsZero() {
		return fmt.Errorf("%w: requestedTime is required", ErrInvalidInput)
	}

	if req.DurationMinutes < domain.MinBookingDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be at least %d", ErrInvalidInput, domain.MinBookingDurationMinutes)
	}

	if req.DurationMinutes > domain.MaxBookingDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must not exceed %d", ErrInvalidInput, domain.MaxBookingDurationMinutes)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateRequestedTime проверяет, что запрошенное время строго в будущем.
// Проверка выполняется на сервере, клиентскому времени не доверяем
func validateRequestedTime(requestedTime, now time.Time) error {
	if !requestedTime.After(now) {
		return ErrTimeInPast
	}
	return nil
}
