package get_day_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/service/slots/models"
)

type SlotService interface {
	GetDaySlots(ctx context.Context, turfID int64, date time.Time) (*models.DaySlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
