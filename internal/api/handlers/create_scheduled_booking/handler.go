package create_scheduled_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SessionsService/internal/api/handlers"
	"github.com/m04kA/SMC-SessionsService/internal/api/middleware"
	createScheduledBooking "github.com/m04kA/SMC-SessionsService/internal/usecase/create_scheduled_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается ISO 8601"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для бронирования"
	msgTimeInPast         = "запрошенное время должно быть в будущем"
	msgInvalidInput       = "некорректные параметры заявки"
)

type Handler struct {
	useCase CreateScheduledBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateScheduledBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/scheduled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/scheduled - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateScheduledBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/scheduled - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings/scheduled - Failed to parse requested time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createScheduledBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/scheduled - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createScheduledBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings/scheduled - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondError(w, http.StatusConflict, msgServiceInactive)

		case errors.Is(err, createScheduledBooking.ErrTimeInPast):
			h.logger.Warn("POST /bookings/scheduled - Requested time in past: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgTimeInPast)

		case errors.Is(err, createScheduledBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/scheduled - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/scheduled - Failed to create booking: user_id=%d, service_id=%d, error=%v",
				userID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/scheduled - Booking created: booking_id=%d, user_id=%d, service_id=%d",
		result.ID, userID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
