package models

import (
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
)

// TimeSlotResponse ответ с данными слота
type TimeSlotResponse struct {
	ID         int64  `json:"id"`
	TurfID     int64  `json:"turfId"`
	SlotDate   string `json:"slotDate"` // "2025-10-15"
	SlotNumber int    `json:"slotNumber"`

	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"

	Status string `json:"status"`

	Price           int64  `json:"price"`
	PriceMultiplier string `json:"priceMultiplier"` // decimal as string, e.g. "1.5"

	MaxBookings     int  `json:"maxBookings"`
	CurrentBookings int  `json:"currentBookings"`
	IsBookable      bool `json:"isBookable"`

	IsBlocked   bool    `json:"isBlocked"`
	BlockReason *string `json:"blockReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DaySlotsResponse ответ со слотами одного дня
type DaySlotsResponse struct {
	TurfID int64              `json:"turfId"`
	Date   string             `json:"date"` // "2025-10-15"
	Slots  []TimeSlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.TimeSlot) *TimeSlotResponse {
	if s == nil {
		return nil
	}

	return &TimeSlotResponse{
		ID:              s.ID,
		TurfID:          s.TurfID,
		SlotDate:        s.SlotDate.Format(domain.DateFormat),
		SlotNumber:      s.SlotNumber,
		StartTime:       s.StartTime.String(),
		EndTime:         s.EndTime.String(),
		Status:          string(s.Status),
		Price:           s.Price,
		PriceMultiplier: s.PriceMultiplier.String(),
		MaxBookings:     s.MaxBookings,
		CurrentBookings: s.CurrentBookings,
		IsBookable:      s.IsBookable(),
		IsBlocked:       s.IsBlocked,
		BlockReason:     s.BlockReason,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует слоты дня в DTO
func FromDomainSlotList(turfID int64, date time.Time, slots []*domain.TimeSlot) *DaySlotsResponse {
	resp := &DaySlotsResponse{
		TurfID: turfID,
		Date:   date.Format(domain.DateFormat),
		Slots:  make([]TimeSlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		if slotResp := FromDomainSlot(slot); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}

	return resp
}
