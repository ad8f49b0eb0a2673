package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"turf_id",
	"slot_date",
	"slot_number",
	"start_time",
	"end_time",
	"status",
	"base_price",
	"price",
	"price_multiplier",
	"max_bookings",
	"current_bookings",
	"is_blocked",
	"block_reason",
	"blocked_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// BulkCreate создает все слоты одного дня одним INSERT (bulk-or-nothing)
// Частичная вставка невозможна: либо все 24 строки, либо ни одной.
// При конфликте уникального ключа (turf_id, slot_date, slot_number)
// возвращает ErrSlotsAlreadyExist - день уже сгенерирован
func (r *Repository) BulkCreate(ctx context.Context, slots []*domain.TimeSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("time_slots").
		Columns(
			"turf_id",
			"slot_date",
			"slot_number",
			"start_time",
			"end_time",
			"status",
			"base_price",
			"price",
			"price_multiplier",
			"max_bookings",
			"current_bookings",
		)

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.TurfID,
			s.SlotDate,
			s.SlotNumber,
			s.StartTime,
			s.EndTime,
			s.Status,
			s.BasePrice,
			s.Price,
			s.PriceMultiplier,
			s.MaxBookings,
			s.CurrentBookings,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: BulkCreate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrSlotsAlreadyExist
		}
		return fmt.Errorf("%w: BulkCreate - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ExistsForDate проверяет, сгенерированы ли слоты на дату
func (r *Repository) ExistsForDate(ctx context.Context, turfID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("time_slots").
		Where(squirrel.Eq{"turf_id": turfID, "slot_date": date}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsForDate - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForDate - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// GetByTurfAndDate получает все слоты площадки на дату, упорядоченные по slot_number
func (r *Repository) GetByTurfAndDate(ctx context.Context, turfID int64, date time.Time) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"turf_id": turfID, "slot_date": date}).
		OrderBy("slot_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTurfAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTurfAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// GetByIDs получает слоты по списку ID в рамках одной площадки
// Внутри активной пишущей транзакции добавляет FOR UPDATE - строки блокируются
// до конца транзакции, конкурентные аллокации того же набора слотов выстраиваются
// в очередь на уровне хранилища
func (r *Repository) GetByIDs(ctx context.Context, turfID int64, ids []int64) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"turf_id": turfID, "id": ids}).
		OrderBy("slot_number ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// MarkBooked переводит слоты available -> booked с инкрементом счетчика занятости
// Статус available, отсутствие блокировки и свободная емкость входят в WHERE
// как предусловия записи: если хотя бы одна строка не прошла предикат,
// возвращается ErrSlotConflict и транзакция должна быть прервана целиком
func (r *Repository) MarkBooked(ctx context.Context, ids []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("status", domain.SlotBooked).
		Set("current_bookings", squirrel.Expr("current_bookings + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":         ids,
			"status":     domain.SlotAvailable,
			"is_blocked": false,
		}).
		Where(squirrel.Expr("current_bookings < max_bookings")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - get rows affected: %v", ErrExecQuery, err)
	}

	if affected != int64(len(ids)) {
		return ErrSlotConflict
	}

	return nil
}

// Release возвращает слоты бронирования обратно в available с декрементом счетчика
// Слоты, переведенные администратором в maintenance/unavailable, статус не меняют,
// но счетчик занятости у них уменьшается
func (r *Repository) Release(ctx context.Context, ids []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("status", squirrel.Expr("CASE WHEN status = 'booked' THEN 'available' ELSE status END")).
		Set("current_bookings", squirrel.Expr("GREATEST(current_bookings - 1, 0)")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if affected != int64(len(ids)) {
		return ErrSlotNotFound
	}

	return nil
}

// SetStatus административно переводит слоты в указанный статус
// Обходит booking-предикат, но сохраняет атомарность multi-slot обновления:
// затронуто меньше строк, чем запрошено - ErrSlotNotFound, транзакция прерывается
func (r *Repository) SetStatus(
	ctx context.Context,
	turfID int64,
	ids []int64,
	status domain.SlotStatus,
	blocked bool,
	reason *string,
	actorID *int64,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("status", status).
		Set("is_blocked", blocked).
		Set("block_reason", reason).
		Set("blocked_by", actorID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"turf_id": turfID, "id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if affected != int64(len(ids)) {
		return ErrSlotNotFound
	}

	return nil
}

// SetPrice административно задает фиксированную цену слотов
func (r *Repository) SetPrice(ctx context.Context, turfID int64, ids []int64, price int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("price", price).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"turf_id": turfID, "id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPrice - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, len(ids), "SetPrice")
}

// SetMultiplier административно задает множитель с пересчетом цены от base_price
func (r *Repository) SetMultiplier(ctx context.Context, turfID int64, ids []int64, multiplier decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("price_multiplier", multiplier).
		Set("price", squirrel.Expr("ROUND(base_price * ?)::BIGINT", multiplier)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"turf_id": turfID, "id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetMultiplier - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, len(ids), "SetMultiplier")
}

// execGuarded выполняет обновление и сверяет число затронутых строк с ожидаемым
func (r *Repository) execGuarded(
	ctx context.Context,
	executor DBExecutor,
	query string,
	args []interface{},
	expected int,
	op string,
) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if affected != int64(expected) {
		return ErrSlotNotFound
	}

	return nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0, domain.SlotsPerDay)

	for rows.Next() {
		var s domain.TimeSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.TurfID,
			&s.SlotDate,
			&s.SlotNumber,
			&s.StartTime,
			&s.EndTime,
			&s.Status,
			&s.BasePrice,
			&s.Price,
			&s.PriceMultiplier,
			&s.MaxBookings,
			&s.CurrentBookings,
			&s.IsBlocked,
			&s.BlockReason,
			&s.BlockedBy,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// isUniqueViolation проверяет SQLSTATE 23505 (unique_violation)
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code) == "23505"
	}
	return false
}
