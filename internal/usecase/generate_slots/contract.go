package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ExistsForDate(ctx context.Context, turfID int64, date time.Time) (bool, error)
	BulkCreate(ctx context.Context, slots []*domain.TimeSlot) error
	GetByTurfAndDate(ctx context.Context, turfID int64, date time.Time) ([]*domain.TimeSlot, error)
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

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
