package manage_slots

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByIDs(ctx context.Context, turfID int64, ids []int64) ([]*domain.TimeSlot, error)
	SetStatus(ctx context.Context, turfID int64, ids []int64, status domain.SlotStatus, blocked bool, reason *string, actorID *int64) error
	SetPrice(ctx context.Context, turfID int64, ids []int64, price int64) error
	SetMultiplier(ctx context.Context, turfID int64, ids []int64, multiplier decimal.Decimal) error
}

// TurfServiceClient интерфейс клиента каталога площадок
type TurfServiceClient interface {
	GetTurf(ctx context.Context, turfID int64) (*turfservice.Turf, error)
}

// ReportCache интерфейс advisory-кэша отчетов
type ReportCache interface {
	Invalidate(ctx context.Context, turfID int64, date time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
