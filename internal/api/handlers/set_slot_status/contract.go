package set_slot_status

import (
	"context"

	manageSlots "github.com/m04kA/SMC-TurfService/internal/usecase/manage_slots"
)

type ManageSlotsUseCase interface {
	SetStatus(ctx context.Context, req *manageSlots.SetStatusRequest) (*manageSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
