package create_instant_booking

import (
	"fmt"

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
