package respond_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SessionsService/internal/api/handlers"
	"github.com/m04kA/SMC-SessionsService/internal/api/middleware"
	respondBooking "github.com/m04kA/SMC-SessionsService/internal/usecase/respond_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "заявка не найдена"
	msgForbidden          = "доступ запрещен"
	msgExpired            = "окно ответа на заявку истекло"
	msgStatusConflict     = "заявка уже обработана"
	msgInvalidAction      = "некорректное действие, ожидается accept или decline"
)

type Handler struct {
	useCase RespondBookingUseCase
	logger  Logger
}

func NewHandler(useCase RespondBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/respond
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/respond - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/respond - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RespondBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/respond - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &respondBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		Action:    req.Action,
	})
	if err != nil {
		switch {
		case errors.Is(err, respondBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/respond - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, respondBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/respond - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, respondBooking.ErrBookingExpired):
			h.logger.Warn("PATCH /bookings/{id}/respond - Booking expired: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgExpired)

		case errors.Is(err, respondBooking.ErrStatusConflict):
			h.logger.Warn("PATCH /bookings/{id}/respond - Status conflict: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgStatusConflict)

		case errors.Is(err, respondBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/respond - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidAction)

		default:
			h.logger.Error("PATCH /bookings/{id}/respond - Failed to respond: booking_id=%d, user_id=%d, error=%v",
				bookingID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/respond - Booking %s: booking_id=%d, user_id=%d",
		result.Status, bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
