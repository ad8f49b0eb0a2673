package set_slot_pricing

import (
	"context"

	manageSlots "github.com/m04kA/SMC-TurfService/internal/usecase/manage_slots"
)

type ManageSlotsUseCase interface {
	SetPricing(ctx context.Context, req *manageSlots.SetPricingRequest) (*manageSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
