package generate_slots

import (
	"context"

	generateSlots "github.com/m04kA/SMC-TurfService/internal/usecase/generate_slots"
)

type GenerateSlotsUseCase interface {
	Execute(ctx context.Context, req *generateSlots.Request) (*generateSlots.Response, error)
	ExecuteRange(ctx context.Context, req *generateSlots.RangeRequest) (*generateSlots.RangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
