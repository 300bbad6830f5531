package reschedule_session

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SessionsService/internal/api/handlers"
	"github.com/m04kA/SMC-SessionsService/internal/api/middleware"
	rescheduleSession "github.com/m04kA/SMC-SessionsService/internal/usecase/reschedule_session"
)

const (
	msgInvalidSessionID   = "некорректный ID сессии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается ISO 8601"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "сессия не найдена"
	msgForbidden          = "доступ запрещен"
	msgTimeInPast         = "новое время начала должно быть в будущем"
	msgRescheduleLocked   = "перенос сессии уже недоступен"
)

type Handler struct {
	useCase RescheduleSessionUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sessions/{sessionId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sessionId из URL
	vars := mux.Vars(r)
	sessionIDStr := vars["sessionId"]

	sessionID, err := strconv.ParseInt(sessionIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/reschedule - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /sessions/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(sessionID, userID)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/reschedule - Failed to parse new start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleSession.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleSession.ErrAccessDenied):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Access denied: session_id=%d, user_id=%d",
				sessionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleSession.ErrTimeInPast):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - New start time in past: session_id=%d", sessionID)
			handlers.RespondBadRequest(w, msgTimeInPast)

		case errors.Is(err, rescheduleSession.ErrRescheduleLocked):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Reschedule locked: session_id=%d", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgRescheduleLocked)

		case errors.Is(err, rescheduleSession.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{id}/reschedule - Invalid input: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /sessions/{id}/reschedule - Failed to reschedule: session_id=%d, user_id=%d, error=%v",
				sessionID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/reschedule - Session rescheduled: session_id=%d, user_id=%d, new_start=%s",
		sessionID, userID, result.StartTime.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
