package manage_slots

import "github.com/shopspring/decimal"

// SetStatusRequest модель запроса административного перевода статуса слотов
type SetStatusRequest struct {
	TurfID  int64
	SlotIDs []int64
	ActorID int64

	Status string  // available | unavailable | maintenance
	Reason *string // причина блокировки, обязательна для не-available
}

// SetPricingRequest модель запроса изменения цены слотов.
// Ровно одно из полей Price/Multiplier должно быть задано
type SetPricingRequest struct {
	TurfID  int64
	SlotIDs []int64
	ActorID int64

	Price      *int64           // фиксированная цена
	Multiplier *decimal.Decimal // пересчет от base_price
}

// Response модель ответа с числом обновленных слотов
type Response struct {
	UpdatedSlots int
}
