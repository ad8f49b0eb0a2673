package daily_report

import (
	"context"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	dailyReport "github.com/m04kA/SMC-TurfService/internal/usecase/daily_report"
)

type DailyReportUseCase interface {
	Execute(ctx context.Context, req *dailyReport.Request) (*domain.DailyReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
