package generate_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	slotStorage "github.com/m04kA/SMC-TurfService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// Фейки для изоляции usecase от БД и внешних сервисов

type fakeSlotRepo struct {
	days        map[string][]*domain.TimeSlot // key: date
	bulkCreates int

	// Имитация гонки: существование отвечает "нет", а вставка
	// натыкается на уникальный ключ конкурентной генерации
	reportMissing bool
	bulkCreateErr error
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{days: make(map[string][]*domain.TimeSlot)}
}

func (r *fakeSlotRepo) key(date time.Time) string {
	return date.Format(domain.DateFormat)
}

func (r *fakeSlotRepo) ExistsForDate(_ context.Context, _ int64, date time.Time) (bool, error) {
	if r.reportMissing {
		return false, nil
	}
	_, ok := r.days[r.key(date)]
	return ok, nil
}

func (r *fakeSlotRepo) BulkCreate(_ context.Context, slots []*domain.TimeSlot) error {
	if r.bulkCreateErr != nil {
		return r.bulkCreateErr
	}
	r.bulkCreates++
	date := slots[0].SlotDate
	for i, s := range slots {
		s.ID = int64(len(r.days)*100 + i + 1)
	}
	r.days[r.key(date)] = slots
	return nil
}

func (r *fakeSlotRepo) GetByTurfAndDate(_ context.Context, _ int64, date time.Time) ([]*domain.TimeSlot, error) {
	return r.days[r.key(date)], nil
}

type fakeTurfClient struct {
	turf *turfservice.Turf
	err  error
}

func (c *fakeTurfClient) GetTurf(_ context.Context, _ int64) (*turfservice.Turf, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.turf, nil
}

type fakeReportCache struct {
	invalidated int
}

func (c *fakeReportCache) Invalidate(_ context.Context, _ int64, _ time.Time) error {
	c.invalidated++
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeSlotRepo, client *fakeTurfClient) *UseCase {
	return NewUseCase(repo, client, &fakeReportCache{}, fakeTxManager{}, nopLogger{})
}

func testTurf() *turfservice.Turf {
	return &turfservice.Turf{ID: 1, Name: "Центральный газон", OwnerID: 10, PricePerHour: 1000, IsActive: true}
}

func TestExecute_GeneratesFullDay(t *testing.T) {
	repo := newFakeSlotRepo()
	uc := newTestUseCase(repo, &fakeTurfClient{turf: testTurf()})

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{TurfID: 1, Date: date})
	require.NoError(t, err)

	assert.True(t, resp.Generated)
	require.Len(t, resp.Slots, domain.SlotsPerDay)

	// Номера слотов соответствуют часам, время стыкуется
	for i, s := range resp.Slots {
		assert.Equal(t, i, s.SlotNumber)
		assert.Equal(t, domain.SlotAvailable, s.Status)
		assert.Equal(t, int64(1000), s.BasePrice)
	}

	// Кривая ценообразования по часам
	assert.Equal(t, int64(800), resp.Slots[2].Price)   // ночь
	assert.Equal(t, int64(1200), resp.Slots[8].Price)  // утренний пик
	assert.Equal(t, int64(1000), resp.Slots[14].Price) // база
	assert.Equal(t, int64(1500), resp.Slots[19].Price) // вечерний пик
	assert.Equal(t, int64(800), resp.Slots[23].Price)  // поздняя ночь

	// Последний слот заворачивается на полночь
	assert.Equal(t, "23:00", resp.Slots[23].StartTime.String())
	assert.Equal(t, "00:00", resp.Slots[23].EndTime.String())
}

func TestExecute_IsIdempotent(t *testing.T) {
	repo := newFakeSlotRepo()
	uc := newTestUseCase(repo, &fakeTurfClient{turf: testTurf()})

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	first, err := uc.Execute(context.Background(), &Request{TurfID: 1, Date: date})
	require.NoError(t, err)
	require.True(t, first.Generated)

	second, err := uc.Execute(context.Background(), &Request{TurfID: 1, Date: date})
	require.NoError(t, err)

	assert.False(t, second.Generated)
	assert.Equal(t, 1, repo.bulkCreates, "existing day must not be regenerated")
	assert.Len(t, second.Slots, domain.SlotsPerDay)
}

func TestExecute_ConcurrentGenerationReturnsExistingSlots(t *testing.T) {
	repo := newFakeSlotRepo()
	uc := newTestUseCase(repo, &fakeTurfClient{turf: testTurf()})

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	// День уже закоммичен другим экземпляром сервиса
	first, err := uc.Execute(context.Background(), &Request{TurfID: 1, Date: date})
	require.NoError(t, err)
	require.True(t, first.Generated)

	// Проигравшая сторона гонки: проверка существования еще не видит день,
	// вставка падает на уникальном ключе и абортирует транзакцию
	repo.reportMissing = true
	repo.bulkCreateErr = slotStorage.ErrSlotsAlreadyExist

	resp, err := uc.Execute(context.Background(), &Request{TurfID: 1, Date: date})
	require.NoError(t, err)

	assert.False(t, resp.Generated)
	assert.Len(t, resp.Slots, domain.SlotsPerDay)
}

func TestExecute_InvalidatesReportCacheOnGeneration(t *testing.T) {
	repo := newFakeSlotRepo()
	cache := &fakeReportCache{}
	uc := NewUseCase(repo, &fakeTurfClient{turf: testTurf()}, cache, fakeTxManager{}, nopLogger{})

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), &Request{TurfID: 1, Date: date})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	// Существующий день кэш не трогает
	_, err = uc.Execute(context.Background(), &Request{TurfID: 1, Date: date})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)
}

func TestExecute_TurfNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo(), &fakeTurfClient{err: turfservice.ErrTurfNotFound})

	_, err := uc.Execute(context.Background(), &Request{
		TurfID: 42,
		Date:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrTurfNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo(), &fakeTurfClient{turf: testTurf()})

	_, err := uc.Execute(context.Background(), &Request{TurfID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{TurfID: 1})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteRange_GeneratesAllDays(t *testing.T) {
	repo := newFakeSlotRepo()
	uc := newTestUseCase(repo, &fakeTurfClient{turf: testTurf()})

	start := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	resp, err := uc.ExecuteRange(context.Background(), &RangeRequest{
		TurfID:    1,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 6),
	})
	require.NoError(t, err)

	assert.Equal(t, 7, resp.DaysProcessed)
	assert.Equal(t, 7, resp.DaysGenerated)
	assert.Equal(t, 7*domain.SlotsPerDay, resp.SlotsCreated)
}

func TestExecuteRange_SkipsExistingDays(t *testing.T) {
	repo := newFakeSlotRepo()
	uc := newTestUseCase(repo, &fakeTurfClient{turf: testTurf()})

	start := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	// Средний день уже сгенерирован
	_, err := uc.Execute(context.Background(), &Request{TurfID: 1, Date: start.AddDate(0, 0, 1)})
	require.NoError(t, err)

	resp, err := uc.ExecuteRange(context.Background(), &RangeRequest{
		TurfID:    1,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.DaysProcessed)
	assert.Equal(t, 2, resp.DaysGenerated)
	assert.Equal(t, 2*domain.SlotsPerDay, resp.SlotsCreated)
}

func TestExecuteRange_Validation(t *testing.T) {
	uc := newTestUseCase(newFakeSlotRepo(), &fakeTurfClient{turf: testTurf()})
	start := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	// Конец раньше начала
	_, err := uc.ExecuteRange(context.Background(), &RangeRequest{
		TurfID:    1,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	// Ровно 30 дней - допустимо
	_, err = uc.ExecuteRange(context.Background(), &RangeRequest{
		TurfID:    1,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 29),
	})
	assert.NoError(t, err)

	// 31 день - превышение лимита
	_, err = uc.ExecuteRange(context.Background(), &RangeRequest{
		TurfID:    1,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 30),
	})
	assert.ErrorIs(t, err, ErrRangeTooLong)
}
