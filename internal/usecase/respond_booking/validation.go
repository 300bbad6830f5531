package respond_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Action != ActionAccept && req.Action != ActionDecline {
		return fmt.Errorf("%w: action must be %q or %q", ErrInvalidInput, ActionAccept, ActionDecline)
	}

	return nil
}
