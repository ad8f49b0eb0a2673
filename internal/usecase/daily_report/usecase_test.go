package daily_report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/infra/cache/reportcache"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
)

// Фейки

type fakeSlotRepo struct {
	slots []*domain.TimeSlot
	calls int
}

func (r *fakeSlotRepo) GetByTurfAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.TimeSlot, error) {
	r.calls++
	return r.slots, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	filter   domain.TurfBookingsFilter
}

func (r *fakeBookingRepo) GetByTurfWithFilter(_ context.Context, filter domain.TurfBookingsFilter) ([]*domain.Booking, error) {
	r.filter = filter
	return r.bookings, nil
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
	cached *domain.DailyReport
	getErr error
	stored *domain.DailyReport
}

func (c *fakeReportCache) Get(_ context.Context, _ int64, _ time.Time) (*domain.DailyReport, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.cached, nil
}

func (c *fakeReportCache) Set(_ context.Context, report *domain.DailyReport) error {
	c.stored = report
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Вспомогательные конструкторы

var reportDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func slotWith(hour int, status domain.SlotStatus) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:         int64(hour + 1),
		TurfID:     1,
		SlotDate:   reportDate,
		SlotNumber: hour,
		Status:     status,
		BasePrice:  1000,
		Price:      1000,
	}
}

func bookingWith(status domain.BookingStatus, price int64) *domain.Booking {
	return &domain.Booking{
		ID:          1,
		TurfID:      1,
		BookingDate: reportDate,
		TotalPrice:  price,
		Status:      status,
	}
}

type fixture struct {
	uc          *UseCase
	slotRepo    *fakeSlotRepo
	bookingRepo *fakeBookingRepo
	cache       *fakeReportCache
}

func newFixture(slots []*domain.TimeSlot, bookings []*domain.Booking) *fixture {
	slotRepo := &fakeSlotRepo{slots: slots}
	bookingRepo := &fakeBookingRepo{bookings: bookings}
	cache := &fakeReportCache{getErr: reportcache.ErrCacheMiss}
	turf := &turfservice.Turf{ID: 1, OwnerID: 10, ManagerIDs: []int64{20}, PricePerHour: 1000, IsActive: true}

	uc := NewUseCase(slotRepo, bookingRepo, &fakeTurfClient{turf: turf}, cache, fakeTxManager{}, nopLogger{})
	return &fixture{uc: uc, slotRepo: slotRepo, bookingRepo: bookingRepo, cache: cache}
}

func validRequest() *Request {
	return &Request{TurfID: 1, Date: reportDate, ActorID: 10}
}

// Тесты

func TestExecute_AggregatesDay(t *testing.T) {
	slots := []*domain.TimeSlot{
		slotWith(8, domain.SlotBooked),   // утренний пик
		slotWith(14, domain.SlotBooked),  // не пик
		slotWith(19, domain.SlotBooked),  // вечерний пик
		slotWith(9, domain.SlotAvailable),
		slotWith(10, domain.SlotAvailable),
		slotWith(11, domain.SlotUnavailable),
		slotWith(12, domain.SlotMaintenance),
	}
	bookings := []*domain.Booking{
		bookingWith(domain.StatusConfirmed, 1200),
		bookingWith(domain.StatusCompleted, 1500),
		bookingWith(domain.StatusCancelled, 1000),
		bookingWith(domain.StatusPending, 800),
	}

	f := newFixture(slots, bookings)

	report, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 7, report.TotalSlots)
	assert.Equal(t, 3, report.BookedSlots)
	assert.Equal(t, 2, report.AvailableSlots)
	assert.Equal(t, 2, report.UnavailableSlots)
	assert.Equal(t, 2, report.PeakHourBookings)
	assert.Equal(t, 1, report.OffPeakBookings)
	assert.InDelta(t, 100.0*3/7, report.OccupancyRate, 0.01)

	// Выручка без отмененных
	assert.Equal(t, int64(3500), report.TotalRevenue)
	assert.Equal(t, 4, report.TotalBookings)
	assert.Equal(t, 1, report.CancelledBookings)
	assert.InDelta(t, 25.0, report.CancellationRate, 0.01)

	// Отмены попадают в выборку бронирований
	assert.True(t, f.bookingRepo.filter.IncludeInactive)

	// Результат закэширован
	require.NotNil(t, f.cache.stored)
	assert.Equal(t, report, f.cache.stored)
}

func TestExecute_EmptyDayHasZeroMetrics(t *testing.T) {
	f := newFixture(nil, nil)

	report, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalSlots)
	assert.Zero(t, report.OccupancyRate)
	assert.Zero(t, report.CancellationRate)
	assert.Zero(t, report.TotalRevenue)
}

func TestExecute_CacheHitSkipsRecompute(t *testing.T) {
	f := newFixture(nil, nil)
	cached := &domain.DailyReport{TurfID: 1, Date: reportDate, TotalSlots: 24, BookedSlots: 5}
	f.cache.cached = cached
	f.cache.getErr = nil

	report, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, cached, report)
	assert.Zero(t, f.slotRepo.calls, "cache hit must not touch the database")
}

func TestExecute_CacheFailureFallsBackToRecompute(t *testing.T) {
	f := newFixture([]*domain.TimeSlot{slotWith(8, domain.SlotAvailable)}, nil)
	f.cache.getErr = errors.New("redis: connection refused")

	report, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalSlots)
	assert.Equal(t, 1, f.slotRepo.calls)
}

func TestExecute_ManagerAllowed(t *testing.T) {
	f := newFixture(nil, nil)

	req := validRequest()
	req.ActorID = 20

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_StrangerDenied(t *testing.T) {
	f := newFixture(nil, nil)

	req := validRequest()
	req.ActorID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_TurfNotFound(t *testing.T) {
	uc := NewUseCase(&fakeSlotRepo{}, &fakeBookingRepo{}, &fakeTurfClient{err: turfservice.ErrTurfNotFound},
		&fakeReportCache{getErr: reportcache.ErrCacheMiss}, fakeTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTurfNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(nil, nil)

	_, err := f.uc.Execute(context.Background(), &Request{TurfID: 0, Date: reportDate, ActorID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{TurfID: 1, ActorID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
