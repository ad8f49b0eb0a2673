package generate_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	generateSlots "github.com/m04kA/SMC-TurfService/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
// Либо date (один день), либо startDate + endDate (диапазон)
type GenerateSlotsRequest struct {
	Date      string `json:"date,omitempty"`      // "2025-10-15"
	StartDate string `json:"startDate,omitempty"` // "2025-10-15"
	EndDate   string `json:"endDate,omitempty"`   // "2025-10-20"
}

// IsRange возвращает true для запроса на диапазон дат
func (r *GenerateSlotsRequest) IsRange() bool {
	return r.StartDate != "" || r.EndDate != ""
}

// ToUseCaseRequest конвертирует запрос одного дня в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest(turfID int64) (*generateSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	return &generateSlots.Request{
		TurfID: turfID,
		Date:   date,
	}, nil
}

// ToUseCaseRangeRequest конвертирует запрос диапазона в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRangeRequest(turfID int64) (*generateSlots.RangeRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate: %w", err)
	}

	return &generateSlots.RangeRequest{
		TurfID:    turfID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// GenerateSlotsResponse HTTP response model для одного дня
type GenerateSlotsResponse struct {
	TurfID     int64  `json:"turfId"`
	Date       string `json:"date"`
	Generated  bool   `json:"generated"` // false, если слоты уже существовали
	SlotsCount int    `json:"slotsCount"`
}

// GenerateRangeResponse HTTP response model для диапазона
type GenerateRangeResponse struct {
	TurfID        int64 `json:"turfId"`
	DaysProcessed int   `json:"daysProcessed"`
	DaysGenerated int   `json:"daysGenerated"`
	SlotsCreated  int   `json:"slotsCreated"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		TurfID:     resp.TurfID,
		Date:       resp.Date.Format(domain.DateFormat),
		Generated:  resp.Generated,
		SlotsCount: len(resp.Slots),
	}
}

// FromUseCaseRangeResponse конвертирует ответ use case в HTTP response
func FromUseCaseRangeResponse(resp *generateSlots.RangeResponse) *GenerateRangeResponse {
	return &GenerateRangeResponse{
		TurfID:        resp.TurfID,
		DaysProcessed: resp.DaysProcessed,
		DaysGenerated: resp.DaysGenerated,
		SlotsCreated:  resp.SlotsCreated,
	}
}
