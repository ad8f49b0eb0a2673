package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	bookingStorage "github.com/m04kA/SMC-TurfService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TurfService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// Фейки

type fakeBookingRepo struct {
	booking   *domain.Booking
	getErr    error
	cancelErr error

	cancelledID     int64
	cancelRefund    int64
	cancelPayStatus domain.PaymentStatus
}

func (r *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.booking, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64, _ string, _ int64, refund int64, payStatus domain.PaymentStatus) error {
	if r.cancelErr != nil {
		return r.cancelErr
	}
	r.cancelledID = id
	r.cancelRefund = refund
	r.cancelPayStatus = payStatus
	return nil
}

type fakeSlotRepo struct {
	releasedIDs []int64
}

func (r *fakeSlotRepo) Release(_ context.Context, ids []int64) error {
	r.releasedIDs = ids
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

// Бронирование на 2026-09-15 10:00, два слота, 2000 единиц, оплачено
func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		UserID:        5,
		TurfID:        1,
		SlotIDs:       []int64{10, 11},
		BookingDate:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("10:00"),
		EndTime:       types.TimeString("12:00"),
		DurationHours: 2,
		TotalPrice:    2000,
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
		ContactEmail:  "ivan@example.com",
		ContactPhone:  "+79990001122",
	}
}

type fixture struct {
	uc          *UseCase
	bookingRepo *fakeBookingRepo
	slotRepo    *fakeSlotRepo
	notifier    *fakeNotifier
	cache       *fakeReportCache
}

func newFixture(b *domain.Booking, now time.Time) *fixture {
	bookingRepo := &fakeBookingRepo{booking: b}
	slotRepo := &fakeSlotRepo{}
	notify := &fakeNotifier{}
	cache := &fakeReportCache{}
	turf := &turfservice.Turf{ID: 1, OwnerID: 10, ManagerIDs: []int64{20}, PricePerHour: 1000, IsActive: true}

	uc := NewUseCase(bookingRepo, slotRepo, &fakeTurfClient{turf: turf}, notify, cache, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedClock{now: now}

	return &fixture{uc: uc, bookingRepo: bookingRepo, slotRepo: slotRepo, notifier: notify, cache: cache}
}

// Тесты

func TestExecute_RefundTiers(t *testing.T) {
	start := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		now           time.Time
		wantRefund    int64
		wantPayStatus domain.PaymentStatus
	}{
		{
			name:          "more than 24h ahead refunds 90%",
			now:           start.Add(-25 * time.Hour),
			wantRefund:    1800,
			wantPayStatus: domain.PaymentPartialRefund,
		},
		{
			name:          "exactly 24h keeps the high tier",
			now:           start.Add(-24 * time.Hour),
			wantRefund:    1800,
			wantPayStatus: domain.PaymentPartialRefund,
		},
		{
			name:          "under 24h refunds 50%",
			now:           start.Add(-24*time.Hour + time.Minute),
			wantRefund:    1000,
			wantPayStatus: domain.PaymentPartialRefund,
		},
		{
			name:          "under 6h refunds 25%",
			now:           start.Add(-5 * time.Hour),
			wantRefund:    500,
			wantPayStatus: domain.PaymentPartialRefund,
		},
		{
			name:          "under 2h refunds nothing",
			now:           start.Add(-time.Hour),
			wantRefund:    0,
			wantPayStatus: domain.PaymentPartialRefund,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(testBooking(), tt.now)

			resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 42, ActorID: 5, Reason: "планы изменились"})
			require.NoError(t, err)

			assert.Equal(t, tt.wantRefund, resp.RefundAmount)
			assert.Equal(t, string(tt.wantPayStatus), resp.PaymentStatus)
			assert.Equal(t, tt.wantRefund, f.bookingRepo.cancelRefund)

			// Слоты освобождены в той же транзакции
			assert.Equal(t, []int64{10, 11}, f.slotRepo.releasedIDs)
		})
	}
}

func TestExecute_UnpaidBookingKeepsPaymentStatus(t *testing.T) {
	b := testBooking()
	b.PaymentStatus = domain.PaymentUnpaid

	f := newFixture(b, time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC))

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 42, ActorID: 5})
	require.NoError(t, err)

	assert.Equal(t, string(domain.PaymentUnpaid), resp.PaymentStatus)
	// Сумма возврата считается, но деньги не двигались
	assert.Equal(t, int64(1800), resp.RefundAmount)
}

func TestExecute_ManagerCanCancel(t *testing.T) {
	f := newFixture(testBooking(), time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC))

	resp, err := f.uc.Execute(context.Background(), &Request{BookingID: 42, ActorID: 20, Reason: "площадка закрыта"})
	require.NoError(t, err)
	assert.Equal(t, int64(20), resp.CancelledBy)
}

func TestExecute_StrangerDenied(t *testing.T) {
	f := newFixture(testBooking(), time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 42, ActorID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, f.slotRepo.releasedIDs)
}

func TestExecute_StartedBookingNotCancellable(t *testing.T) {
	// Время уже после начала бронирования
	f := newFixture(testBooking(), time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 42, ActorID: 5})
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestExecute_TerminalStatusNotCancellable(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow} {
		b := testBooking()
		b.Status = status

		f := newFixture(b, time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC))

		_, err := f.uc.Execute(context.Background(), &Request{BookingID: 42, ActorID: 5})
		assert.ErrorIs(t, err, ErrNotCancellable, "status %s", status)
	}
}

func TestExecute_ConcurrentCancelMapsToNotCancellable(t *testing.T) {
	f := newFixture(testBooking(), time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC))
	f.bookingRepo.cancelErr = bookingStorage.ErrNotCancellable

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 42, ActorID: 5})
	assert.ErrorIs(t, err, ErrNotCancellable)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture(testBooking(), time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC))
	f.bookingRepo.getErr = bookingStorage.ErrBookingNotFound

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 404, ActorID: 5})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestNextPaymentStatus(t *testing.T) {
	paid := testBooking()
	assert.Equal(t, domain.PaymentRefunded, nextPaymentStatus(paid, 2000))
	assert.Equal(t, domain.PaymentPartialRefund, nextPaymentStatus(paid, 1800))

	unpaid := testBooking()
	unpaid.PaymentStatus = domain.PaymentUnpaid
	assert.Equal(t, domain.PaymentUnpaid, nextPaymentStatus(unpaid, 1800))
}

func TestExecute_EmitsCancellationEvent(t *testing.T) {
	f := newFixture(testBooking(), time.Date(2026, 9, 13, 10, 0, 0, 0, time.UTC))

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 42, ActorID: 5})
	require.NoError(t, err)

	assert.Equal(t, []string{notifier.EventBookingCancelled}, f.notifier.events)
	assert.Equal(t, 1, f.cache.invalidated)
}
