package create_instant_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SessionsService/internal/api/handlers"
	"github.com/m04kA/SMC-SessionsService/internal/api/middleware"
	createInstantBooking "github.com/m04kA/SMC-SessionsService/internal/usecase/create_instant_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для бронирования"
	msgInvalidInput       = "некорректные параметры заявки"
)

type Handler struct {
	useCase CreateInstantBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateInstantBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/instant
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/instant - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateInstantBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/instant - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createInstantBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/instant - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createInstantBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings/instant - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondError(w, http.StatusConflict, msgServiceInactive)

		case errors.Is(err, createInstantBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/instant - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/instant - Failed to create booking: user_id=%d, service_id=%d, error=%v",
				userID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/instant - Booking created: booking_id=%d, user_id=%d, service_id=%d",
		result.ID, userID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
