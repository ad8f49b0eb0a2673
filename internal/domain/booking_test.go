package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_Reference(t *testing.T) {
	tests := []struct {
		id   int64
		want string
	}{
		{id: 1, want: "TRF-000001"},
		{id: 255, want: "TRF-0000FF"},
		{id: 0xABCDEF, want: "TRF-ABCDEF"},
		// Старшие биты за пределами 6 hex цифр отбрасываются
		{id: 0x1ABCDEF, want: "TRF-ABCDEF"},
	}

	for _, tt := range tests {
		b := &Booking{ID: tt.id}
		assert.Equal(t, tt.want, b.Reference())
	}
}

func TestBooking_CanBeCancelled(t *testing.T) {
	cancellable := map[BookingStatus]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCancelled: false,
		StatusCompleted: false,
		StatusNoShow:    false,
	}

	for status, want := range cancellable {
		b := &Booking{Status: status}
		assert.Equal(t, want, b.CanBeCancelled(), "status %s", status)
	}
}

func TestBooking_IsTerminal(t *testing.T) {
	terminal := map[BookingStatus]bool{
		StatusPending:   false,
		StatusConfirmed: false,
		StatusCancelled: true,
		StatusCompleted: true,
		StatusNoShow:    true,
	}

	for status, want := range terminal {
		b := &Booking{Status: status}
		assert.Equal(t, want, b.IsTerminal(), "status %s", status)
	}
}

func TestTimeSlot_IsBookable(t *testing.T) {
	tests := []struct {
		name string
		slot TimeSlot
		want bool
	}{
		{
			name: "available with capacity",
			slot: TimeSlot{Status: SlotAvailable, MaxBookings: 1, CurrentBookings: 0},
			want: true,
		},
		{
			name: "booked",
			slot: TimeSlot{Status: SlotBooked, MaxBookings: 1, CurrentBookings: 1},
			want: false,
		},
		{
			name: "blocked",
			slot: TimeSlot{Status: SlotAvailable, IsBlocked: true, MaxBookings: 1},
			want: false,
		},
		{
			name: "maintenance",
			slot: TimeSlot{Status: SlotMaintenance, MaxBookings: 1},
			want: false,
		},
		{
			name: "at capacity",
			slot: TimeSlot{Status: SlotAvailable, MaxBookings: 2, CurrentBookings: 2},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.IsBookable())
		})
	}
}
