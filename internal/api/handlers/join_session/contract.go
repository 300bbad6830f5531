package join_session

import (
	"context"

	"github.com/m04kA/SMC-SessionsService/internal/service/sessions/models"
)

type SessionService interface {
	JoinInfo(ctx context.Context, id int64, userID int64) (*models.JoinInfoResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
