package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	"github.com/m04kA/SMC-TurfService/internal/usecase/generate_slots"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByTurfAndDate(ctx context.Context, turfID int64, date time.Time) ([]*domain.TimeSlot, error)
}

// TurfServiceClient интерфейс клиента каталога площадок
type TurfServiceClient interface {
	GetTurf(ctx context.Context, turfID int64) (*turfservice.Turf, error)
}

// SlotGenerator ленивая генерация сетки слотов на день
type SlotGenerator interface {
	Execute(ctx context.Context, req *generate_slots.Request) (*generate_slots.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
