package make_appointment

import (
	"context"

	makeAppointment "github.com/m04kA/SMC-AvailabilityService/internal/usecase/make_appointment"
)

type MakeAppointmentUseCase interface {
	Execute(ctx context.Context, req *makeAppointment.Request) (*makeAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
