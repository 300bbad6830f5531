package create_instant_booking

import (
	"context"

	createInstantBooking "github.com/m04kA/SMC-SessionsService/internal/usecase/create_instant_booking"
)

type CreateInstantBookingUseCase interface {
	Execute(ctx context.Context, req *createInstantBooking.Request) (*createInstantBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
