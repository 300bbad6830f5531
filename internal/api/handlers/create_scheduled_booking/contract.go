package create_scheduled_booking

import (
	"context"

	createScheduledBooking "github.com/m04kA/SMC-SessionsService/internal/usecase/create_scheduled_booking"
)

type CreateScheduledBookingUseCase interface {
	Execute(ctx context.Context, req *createScheduledBooking.Request) (*createScheduledBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
