package get_quote

import (
	"context"

	getBookingQuote "github.com/m04kA/SMC-SessionsService/internal/usecase/get_booking_quote"
)

type GetBookingQuoteUseCase interface {
	Execute(ctx context.Context, req *getBookingQuote.Request) (*getBookingQuote.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
