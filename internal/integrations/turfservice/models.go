package turfservice

import "github.com/m04kA/SMC-TurfService/internal/domain"

// Turf модель площадки из TurfService (каталог площадок)
type Turf struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	OwnerID      int64   `json:"owner_id"`
	ManagerIDs   []int64 `json:"manager_ids"`
	PricePerHour int64   `json:"price_per_hour"` // базовая цена за час в целых денежных единицах
	IsActive     bool    `json:"is_active"`
}

// RoleOf определяет роль пользователя по отношению к площадке
func (t *Turf) RoleOf(userID int64) domain.Role {
	if t.OwnerID == userID {
		return domain.RoleOwner
	}
	for _, id := range t.ManagerIDs {
		if id == userID {
			return domain.RoleManager
		}
	}
	return domain.RoleUser
}

// IsManagedBy возвращает true, если роль пользователя выше обычного
// пользователя (менеджер или владелец площадки)
func (t *Turf) IsManagedBy(userID int64) bool {
	return t.RoleOf(userID).IsElevated()
}

// ErrorResponse модель ошибки от TurfService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
