package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

// Request модель запроса генерации слотов на одну дату
type Request struct {
	TurfID int64     // ID площадки
	Date   time.Time // Дата (без времени)
}

// RangeRequest модель запроса пакетной генерации на диапазон дат
type RangeRequest struct {
	TurfID    int64
	StartDate time.Time
	EndDate   time.Time // включительно, не более 30 дней от StartDate
}

// Response модель ответа со слотами дня
type Response struct {
	TurfID    int64
	Date      time.Time
	Generated bool // true, если слоты были созданы этим вызовом
	Slots     []*domain.TimeSlot
}

// RangeResponse итог пакетной генерации
type RangeResponse struct {
	TurfID        int64
	DaysProcessed int // всего дней в диапазоне
	DaysGenerated int // дней, для которых слоты были созданы (остальные уже существовали)
	SlotsCreated  int
}
