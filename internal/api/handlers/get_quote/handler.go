package get_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SessionsService/internal/api/handlers"
	getBookingQuote "github.com/m04kA/SMC-SessionsService/internal/usecase/get_booking_quote"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDuration  = "некорректная длительность сессии"
	msgServiceNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetBookingQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetBookingQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/quote?durationMinutes=90
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем serviceId из URL
	vars := mux.Vars(r)
	serviceIDStr := vars["serviceId"]

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/quote - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	durationStr := r.URL.Query().Get("durationMinutes")
	durationMinutes, err := strconv.Atoi(durationStr)
	if err != nil {
		h.logger.Warn("GET /services/{id}/quote - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getBookingQuote.Request{
		ServiceID:       serviceID,
		DurationMinutes: durationMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, getBookingQuote.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/quote - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getBookingQuote.ErrInvalidInput):
			h.logger.Warn("GET /services/{id}/quote - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /services/{id}/quote - Failed to compute quote: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/quote - Quote computed: quote_id=%s, service_id=%d",
		result.QuoteID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
