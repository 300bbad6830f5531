package get_user_sessions

import (
	"context"

	"github.com/m04kA/SMC-SessionsService/internal/service/sessions/models"
)

type SessionService interface {
	GetUserSessions(ctx context.Context, userID int64, status *string) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
