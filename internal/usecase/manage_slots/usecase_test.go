package manage_slots

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	"github.com/m04kA/SMC-TurfService/pkg/ptr"
)

// Фейки

type fakeSlotRepo struct {
	slots map[int64]*domain.TimeSlot

	statusTurfID  int64
	statusIDs     []int64
	statusValue   domain.SlotStatus
	statusBlocked bool
	statusReason  *string
	statusActor   *int64

	priceValue      *int64
	multiplierValue *decimal.Decimal
}

func (r *fakeSlotRepo) GetByIDs(_ context.Context, turfID int64, ids []int64) ([]*domain.TimeSlot, error) {
	var out []*domain.TimeSlot
	for _, id := range ids {
		if s, ok := r.slots[id]; ok && s.TurfID == turfID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) SetStatus(_ context.Context, turfID int64, ids []int64, status domain.SlotStatus, blocked bool, reason *string, actorID *int64) error {
	r.statusTurfID = turfID
	r.statusIDs = ids
	r.statusValue = status
	r.statusBlocked = blocked
	r.statusReason = reason
	r.statusActor = actorID
	return nil
}

func (r *fakeSlotRepo) SetPrice(_ context.Context, _ int64, _ []int64, price int64) error {
	r.priceValue = &price
	return nil
}

func (r *fakeSlotRepo) SetMultiplier(_ context.Context, _ int64, _ []int64, multiplier decimal.Decimal) error {
	r.multiplierValue = &multiplier
	return nil
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
	invalidatedDays []time.Time
}

func (c *fakeReportCache) Invalidate(_ context.Context, _ int64, date time.Time) error {
	c.invalidatedDays = append(c.invalidatedDays, date)
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

// Вспомогательные конструкторы

var slotDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func testSlot(id int64, status domain.SlotStatus) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:         id,
		TurfID:     1,
		SlotDate:   slotDate,
		SlotNumber: int(id),
		Status:     status,
		BasePrice:  1000,
		Price:      1000,
	}
}

type fixture struct {
	uc       *UseCase
	slotRepo *fakeSlotRepo
	cache    *fakeReportCache
}

func newFixture(slots ...*domain.TimeSlot) *fixture {
	slotRepo := &fakeSlotRepo{slots: make(map[int64]*domain.TimeSlot)}
	for _, s := range slots {
		slotRepo.slots[s.ID] = s
	}

	cache := &fakeReportCache{}
	turf := &turfservice.Turf{ID: 1, OwnerID: 10, ManagerIDs: []int64{20}, PricePerHour: 1000, IsActive: true}

	uc := NewUseCase(slotRepo, &fakeTurfClient{turf: turf}, cache, fakeTxManager{}, nopLogger{})
	return &fixture{uc: uc, slotRepo: slotRepo, cache: cache}
}

// Тесты SetStatus

func TestSetStatus_BlocksForMaintenance(t *testing.T) {
	f := newFixture(testSlot(1, domain.SlotAvailable), testSlot(2, domain.SlotAvailable))

	resp, err := f.uc.SetStatus(context.Background(), &SetStatusRequest{
		TurfID:  1,
		SlotIDs: []int64{1, 2},
		ActorID: 10,
		Status:  "maintenance",
		Reason:  ptr.Ptr("замена покрытия"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.UpdatedSlots)
	assert.Equal(t, domain.SlotMaintenance, f.slotRepo.statusValue)
	assert.True(t, f.slotRepo.statusBlocked)
	require.NotNil(t, f.slotRepo.statusReason)
	assert.Equal(t, "замена покрытия", *f.slotRepo.statusReason)
	require.NotNil(t, f.slotRepo.statusActor)
	assert.Equal(t, int64(10), *f.slotRepo.statusActor)

	// Кэш отчета за день сброшен один раз, несмотря на два слота
	assert.Equal(t, []time.Time{slotDate}, f.cache.invalidatedDays)
}

func TestSetStatus_UnblockClearsReason(t *testing.T) {
	blocked := testSlot(1, domain.SlotMaintenance)
	blocked.IsBlocked = true

	f := newFixture(blocked)

	_, err := f.uc.SetStatus(context.Background(), &SetStatusRequest{
		TurfID:  1,
		SlotIDs: []int64{1},
		ActorID: 20,
		Status:  "available",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotAvailable, f.slotRepo.statusValue)
	assert.False(t, f.slotRepo.statusBlocked)
	assert.Nil(t, f.slotRepo.statusReason)
	assert.Nil(t, f.slotRepo.statusActor)
}

func TestSetStatus_RejectsBookedSlot(t *testing.T) {
	f := newFixture(testSlot(1, domain.SlotAvailable), testSlot(2, domain.SlotBooked))

	_, err := f.uc.SetStatus(context.Background(), &SetStatusRequest{
		TurfID:  1,
		SlotIDs: []int64{1, 2},
		ActorID: 10,
		Status:  "unavailable",
		Reason:  ptr.Ptr("частное мероприятие"),
	})
	assert.ErrorIs(t, err, ErrSlotBooked)
	assert.Empty(t, f.slotRepo.statusIDs, "no slot must be updated")
	assert.Empty(t, f.cache.invalidatedDays)
}

func TestSetStatus_BookedIsNotAValidTarget(t *testing.T) {
	f := newFixture(testSlot(1, domain.SlotAvailable))

	_, err := f.uc.SetStatus(context.Background(), &SetStatusRequest{
		TurfID:  1,
		SlotIDs: []int64{1},
		ActorID: 10,
		Status:  "booked",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatus_ReasonRequiredForBlocking(t *testing.T) {
	f := newFixture(testSlot(1, domain.SlotAvailable))

	_, err := f.uc.SetStatus(context.Background(), &SetStatusRequest{
		TurfID:  1,
		SlotIDs: []int64{1},
		ActorID: 10,
		Status:  "unavailable",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.SetStatus(context.Background(), &SetStatusRequest{
		TurfID:  1,
		SlotIDs: []int64{1},
		ActorID: 10,
		Status:  "unavailable",
		Reason:  ptr.Ptr("   "),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetStatus_MissingSlot(t *testing.T) {
	f := newFixture(testSlot(1, domain.SlotAvailable))

	_, err := f.uc.SetStatus(context.Background(), &SetStatusRequest{
		TurfID:  1,
		SlotIDs: []int64{1, 99},
		ActorID: 10,
		Status:  "available",
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestSetStatus_StrangerDenied(t *testing.T) {
	f := newFixture(testSlot(1, domain.SlotAvailable))

	_, err := f.uc.SetStatus(context.Background(), &SetStatusRequest{
		TurfID:  1,
		SlotIDs: []int64{1},
		ActorID: 999,
		Status:  "available",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSetStatus_TurfNotFound(t *testing.T) {
	f := newFixture(testSlot(1, domain.SlotAvailable))
	f.uc.turfClient = &fakeTurfClient{err: turfservice.ErrTurfNotFound}

	_, err := f.uc.SetStatus(context.Background(), &SetStatusRequest{
		TurfID:  42,
		SlotIDs: []int64{1},
		ActorID: 10,
		Status:  "available",
	})
	assert.ErrorIs(t, err, ErrTurfNotFound)
}

// Тесты SetPricing

func TestSetPricing_FixedPrice(t *testing.T) {
	f := newFixture(testSlot(1, domain.SlotAvailable))

	resp, err := f.uc.SetPricing(context.Background(), &SetPricingRequest{
		TurfID:  1,
		SlotIDs: []int64{1},
		ActorID: 10,
		Price:   ptr.Ptr(int64(2500)),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.UpdatedSlots)
	require.NotNil(t, f.slotRepo.priceValue)
	assert.Equal(t, int64(2500), *f.slotRepo.priceValue)
	assert.Nil(t, f.slotRepo.multiplierValue)
	assert.Equal(t, []time.Time{slotDate}, f.cache.invalidatedDays)
}

func TestSetPricing_Multiplier(t *testing.T) {
	f := newFixture(testSlot(1, domain.SlotAvailable))
	m := decimal.NewFromFloat(1.5)

	_, err := f.uc.SetPricing(context.Background(), &SetPricingRequest{
		TurfID:     1,
		SlotIDs:    []int64{1},
		ActorID:    10,
		Multiplier: &m,
	})
	require.NoError(t, err)

	require.NotNil(t, f.slotRepo.multiplierValue)
	assert.True(t, m.Equal(*f.slotRepo.multiplierValue))
	assert.Nil(t, f.slotRepo.priceValue)
}

func TestSetPricing_ExactlyOneOfPriceOrMultiplier(t *testing.T) {
	f := newFixture(testSlot(1, domain.SlotAvailable))
	m := decimal.NewFromFloat(1.5)

	_, err := f.uc.SetPricing(context.Background(), &SetPricingRequest{
		TurfID:  1,
		SlotIDs: []int64{1},
		ActorID: 10,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.SetPricing(context.Background(), &SetPricingRequest{
		TurfID:     1,
		SlotIDs:    []int64{1},
		ActorID:    10,
		Price:      ptr.Ptr(int64(2500)),
		Multiplier: &m,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetPricing_Bounds(t *testing.T) {
	f := newFixture(testSlot(1, domain.SlotAvailable))

	_, err := f.uc.SetPricing(context.Background(), &SetPricingRequest{
		TurfID:  1,
		SlotIDs: []int64{1},
		ActorID: 10,
		Price:   ptr.Ptr(int64(0)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	low := decimal.NewFromFloat(0.4)
	_, err = f.uc.SetPricing(context.Background(), &SetPricingRequest{
		TurfID:     1,
		SlotIDs:    []int64{1},
		ActorID:    10,
		Multiplier: &low,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	high := decimal.NewFromFloat(3.1)
	_, err = f.uc.SetPricing(context.Background(), &SetPricingRequest{
		TurfID:     1,
		SlotIDs:    []int64{1},
		ActorID:    10,
		Multiplier: &high,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Граничные значения допустимы
	min := decimal.NewFromFloat(0.5)
	_, err = f.uc.SetPricing(context.Background(), &SetPricingRequest{
		TurfID:     1,
		SlotIDs:    []int64{1},
		ActorID:    10,
		Multiplier: &min,
	})
	assert.NoError(t, err)
}
