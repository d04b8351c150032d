package availability_actions

import (
	"context"

	checkBooking "github.com/lunanails/NS-BookingService/internal/usecase/check_booking"
	getAvailableSlots "github.com/lunanails/NS-BookingService/internal/usecase/get_available_slots"
)

type CheckBookingUseCase interface {
	Execute(ctx context.Context, req *checkBooking.Request) (*checkBooking.Response, error)
}

type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
	Suggest(ctx context.Context, req *getAvailableSlots.SuggestRequest) (*getAvailableSlots.SuggestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
