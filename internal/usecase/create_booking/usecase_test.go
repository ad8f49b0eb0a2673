package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	slotStorage "github.com/m04kA/SMC-TurfService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TurfService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	"github.com/m04kA/SMC-TurfService/pkg/ptr"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// Фейки

type fakeSlotRepo struct {
	slots         map[int64]*domain.TimeSlot
	markBookedErr error
	bookedIDs     []int64
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

func (r *fakeSlotRepo) MarkBooked(_ context.Context, ids []int64) error {
	if r.markBookedErr != nil {
		return r.markBookedErr
	}
	r.bookedIDs = ids
	return nil
}

type fakeBookingRepo struct {
	created *domain.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = 77
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.created = b
	return b, nil
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

type fakeNotifier struct {
	events []string
}

func (n *fakeNotifier) Notify(_ context.Context, eventType string, _ interface{}) error {
	n.events = append(n.events, eventType)
	return nil
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

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Вспомогательные конструкторы

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func testSlot(id int64, hour int, price int64) *domain.TimeSlot {
	return testSlotOnDate(id, testDate, hour, price)
}

func testSlotOnDate(id int64, date time.Time, hour int, price int64) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:          id,
		TurfID:      1,
		SlotDate:    date,
		SlotNumber:  hour,
		StartTime:   types.TimeString(time.Date(0, 1, 1, hour, 0, 0, 0, time.UTC).Format("15:04")),
		EndTime:     types.TimeString(time.Date(0, 1, 1, (hour+1)%24, 0, 0, 0, time.UTC).Format("15:04")),
		Status:      domain.SlotAvailable,
		BasePrice:   1000,
		Price:       price,
		MaxBookings: 1,
	}
}

type fixture struct {
	uc          *UseCase
	slotRepo    *fakeSlotRepo
	bookingRepo *fakeBookingRepo
	notifier    *fakeNotifier
	cache       *fakeReportCache
}

func newFixture(slots ...*domain.TimeSlot) *fixture {
	slotRepo := &fakeSlotRepo{slots: make(map[int64]*domain.TimeSlot)}
	for _, s := range slots {
		slotRepo.slots[s.ID] = s
	}

	bookingRepo := &fakeBookingRepo{}
	notify := &fakeNotifier{}
	cache := &fakeReportCache{}
	turf := &turfservice.Turf{ID: 1, OwnerID: 10, PricePerHour: 1000, IsActive: true}

	uc := NewUseCase(slotRepo, bookingRepo, &fakeTurfClient{turf: turf}, notify, cache, fakeTxManager{}, nopLogger{})
	// Фиксируем время до начала тестового дня
	uc.timeProvider = fixedClock{now: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, slotRepo: slotRepo, bookingRepo: bookingRepo, notifier: notify, cache: cache}
}

func validRequest(slotIDs ...int64) *Request {
	return &Request{
		UserID:       5,
		TurfID:       1,
		SlotIDs:      slotIDs,
		ContactName:  "Иван Петров",
		ContactPhone: "+79990001122",
		ContactEmail: "ivan@example.com",
	}
}

// Тесты

func TestExecute_BooksContiguousSlots(t *testing.T) {
	f := newFixture(
		testSlot(3, 9, 1200),
		testSlot(4, 10, 1200),
		testSlot(5, 11, 1200),
	)

	resp, err := f.uc.Execute(context.Background(), validRequest(5, 3, 4))
	require.NoError(t, err)

	assert.Equal(t, int64(77), resp.ID)
	assert.Equal(t, "TRF-00004D", resp.Reference)
	assert.Equal(t, int64(3600), resp.TotalPrice)
	assert.Equal(t, 3, resp.DurationHours)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentUnpaid), resp.PaymentStatus)

	// Слоты упорядочены по номеру независимо от порядка в запросе
	assert.Equal(t, []int64{3, 4, 5}, f.slotRepo.bookedIDs)
	assert.Equal(t, "09:00", resp.StartTime.String())
	assert.Equal(t, "12:00", resp.EndTime.String())

	// Side effects: подтверждение + напоминание, кэш сброшен
	assert.Equal(t, []string{notifier.EventBookingConfirmed, notifier.EventBookingReminder}, f.notifier.events)
	assert.Equal(t, 1, f.cache.invalidated)
}

func TestExecute_SingleSlotIsContiguous(t *testing.T) {
	f := newFixture(testSlot(3, 9, 1200))

	resp, err := f.uc.Execute(context.Background(), validRequest(3))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.DurationHours)
	assert.Equal(t, int64(1200), resp.TotalPrice)
}

func TestExecute_RejectsNonContiguousSlots(t *testing.T) {
	f := newFixture(
		testSlot(3, 9, 1200),
		testSlot(5, 11, 1200),
	)

	_, err := f.uc.Execute(context.Background(), validRequest(3, 5))
	assert.ErrorIs(t, err, ErrNonContiguousSlots)
	assert.Empty(t, f.notifier.events, "failed booking must not notify")
}

func TestExecute_RejectsSlotsFromDifferentDays(t *testing.T) {
	// Смежные номера на соседних датах не образуют один интервал
	f := newFixture(
		testSlot(3, 9, 1200),
		testSlotOnDate(4, testDate.AddDate(0, 0, 1), 10, 1200),
	)

	_, err := f.uc.Execute(context.Background(), validRequest(3, 4))
	assert.ErrorIs(t, err, ErrNonContiguousSlots)
	assert.Empty(t, f.slotRepo.bookedIDs, "no slot must be booked")
	assert.Empty(t, f.notifier.events)
}

func TestExecute_RejectsUnavailableSlot(t *testing.T) {
	booked := testSlot(4, 10, 1200)
	booked.Status = domain.SlotBooked
	booked.CurrentBookings = 1

	f := newFixture(testSlot(3, 9, 1200), booked)

	_, err := f.uc.Execute(context.Background(), validRequest(3, 4))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_RejectsBlockedSlot(t *testing.T) {
	blocked := testSlot(3, 9, 1200)
	blocked.IsBlocked = true
	blocked.BlockReason = ptr.Ptr("ремонт покрытия")

	f := newFixture(blocked)

	_, err := f.uc.Execute(context.Background(), validRequest(3))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_RejectsPastSlot(t *testing.T) {
	f := newFixture(testSlot(3, 9, 1200))
	// Часы показывают время после начала слота
	f.uc.timeProvider = fixedClock{now: time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), validRequest(3))
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestExecute_MissingSlotsFail(t *testing.T) {
	f := newFixture(testSlot(3, 9, 1200))

	_, err := f.uc.Execute(context.Background(), validRequest(3, 99))
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_LostRaceMapsToUnavailable(t *testing.T) {
	f := newFixture(testSlot(3, 9, 1200))
	f.slotRepo.markBookedErr = slotStorage.ErrSlotConflict

	_, err := f.uc.Execute(context.Background(), validRequest(3))
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_ValidatesContactInfo(t *testing.T) {
	f := newFixture(testSlot(3, 9, 1200))

	req := validRequest(3)
	req.ContactEmail = "   "

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidContactInfo)
}

func TestExecute_ValidatesInput(t *testing.T) {
	f := newFixture(testSlot(3, 9, 1200))

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidInput)

	req := validRequest(3, 3)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest(3)
	req.TeamSize = ptr.Ptr(0)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_TurfNotFound(t *testing.T) {
	f := newFixture(testSlot(3, 9, 1200))
	uc := NewUseCase(f.slotRepo, f.bookingRepo, &fakeTurfClient{err: turfservice.ErrTurfNotFound},
		f.notifier, f.cache, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest(3))
	assert.ErrorIs(t, err, ErrTurfNotFound)
}
