package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotsAlreadyExist возвращается при попытке повторной генерации слотов на дату
	ErrSlotsAlreadyExist = errors.New("slot.repository: slots already exist for this date")

	// ErrSlotConflict возвращается, когда guarded-обновление затронуло меньше строк,
	// чем ожидалось - слот уже занят конкурентным бронированием или заблокирован
	ErrSlotConflict = errors.New("slot.repository: slot state changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
