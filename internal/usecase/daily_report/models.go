package daily_report

import "time"

// Request модель запроса дневного отчета
type Request struct {
	TurfID  int64
	Date    time.Time
	ActorID int64 // менеджер или владелец площадки
}
