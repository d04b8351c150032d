package update_appointment_status

import (
	"context"

	"github.com/lunanails/NS-BookingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
