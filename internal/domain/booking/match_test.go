package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

func mkBooking(id, creator, eventID string, status types.BookingStatus) *Booking {
	b := &Booking{ID: id, Status: status}
	if creator != "" {
		b.Creator = types.NewIDRef[Member](creator)
	}
	if eventID != "" {
		b.Event = types.NewIDRef[EventInfo](eventID)
	}
	return b
}

func TestFindActiveBooking(t *testing.T) {
	tests := []struct {
		name     string
		bookings []*Booking
		userID   string
		eventID  string
		want     string
	}{
		{
			name: "cancelled then refunded are skipped",
			bookings: []*Booking{
				mkBooking("b1", "u1", "e1", types.BookingStatusCancelled),
				mkBooking("b2", "u1", "e1", types.BookingStatusRefunded),
				mkBooking("b3", "u1", "e1", types.BookingStatusActive),
			},
			userID:  "u1",
			eventID: "e1",
			want:    "b3",
		},
		{
			name: "active beats later cancelled in source order",
			bookings: []*Booking{
				mkBooking("b1", "u1", "e1", types.BookingStatusActive),
				mkBooking("b2", "u1", "e1", types.BookingStatusCancelled),
			},
			userID:  "u1",
			eventID: "e1",
			want:    "b1",
		},
		{
			name: "other users' bookings are skipped",
			bookings: []*Booking{
				mkBooking("b1", "u2", "e1", types.BookingStatusActive),
			},
			userID:  "u1",
			eventID: "e1",
			want:    "",
		},
		{
			name: "unresolvable creator is ambiguous, not disqualifying",
			bookings: []*Booking{
				mkBooking("b1", "", "e1", types.BookingStatusActive),
			},
			userID:  "u1",
			eventID: "e1",
			want:    "b1",
		},
		{
			name: "ambiguous creator without a supplied user id is skipped",
			bookings: []*Booking{
				mkBooking("b1", "", "e1", types.BookingStatusActive),
			},
			userID:  "",
			eventID: "e1",
			want:    "",
		},
		{
			name: "wrong event is skipped",
			bookings: []*Booking{
				mkBooking("b1", "u1", "e2", types.BookingStatusActive),
			},
			userID:  "u1",
			eventID: "e1",
			want:    "",
		},
		{
			name: "pending and completed count as live",
			bookings: []*Booking{
				mkBooking("b1", "u1", "e1", types.BookingStatusPending),
			},
			userID:  "u1",
			eventID: "e1",
			want:    "b1",
		},
		{
			name: "first live booking wins the tie-break",
			bookings: []*Booking{
				mkBooking("b1", "u1", "e1", types.BookingStatusActive),
				mkBooking("b2", "u1", "e1", types.BookingStatusActive),
			},
			userID:  "u1",
			eventID: "e1",
			want:    "b1",
		},
		{
			name:    "empty event id matches nothing",
			userID:  "u1",
			eventID: "",
			bookings: []*Booking{
				mkBooking("b1", "u1", "", types.BookingStatusActive),
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindActiveBooking(tt.bookings, tt.userID, tt.eventID)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindActiveBookingNeverReturnsDead(t *testing.T) {
	bookings := []*Booking{
		mkBooking("b1", "u1", "e1", types.BookingStatusCancelled),
		mkBooking("b2", "u1", "e1", types.BookingStatusRefunded),
	}
	assert.Empty(t, FindActiveBooking(bookings, "u1", "e1"))
}

func TestLiveBookingsFlagsDuplicates(t *testing.T) {
	bookings := []*Booking{
		mkBooking("b1", "u1", "e1", types.BookingStatusActive),
		mkBooking("b2", "u1", "e1", types.BookingStatusActive),
		mkBooking("b3", "u1", "e1", types.BookingStatusCancelled),
	}
	ids := LiveBookings(bookings, "u1", "e1")
	assert.Equal(t, []string{"b1", "b2"}, ids)
}

func TestFromPayloadEmbeddedRefs(t *testing.T) {
	bookings := FromPayloadList([]any{
		map[string]any{
			"_id":     "b1",
			"status":  "active",
			"creator": map[string]any{"_id": "u1", "email": "a@un1t.com"},
			"event":   "e1",
		},
		map[string]any{
			"_id":     "b2",
			"status":  "canceled",
			"creator": "u1",
			"event":   map[string]any{"_id": "e1", "title": "HIIT"},
		},
	})

	assert.Len(t, bookings, 2)
	assert.Equal(t, "u1", bookings[0].CreatorID())
	assert.Equal(t, "e1", bookings[0].EventID())
	assert.Equal(t, types.BookingStatusCancelled, bookings[1].Status)
	assert.Equal(t, "e1", bookings[1].EventID())
}

// The first (active) booking's identifier must be returned, not "", when a
// cancelled duplicate of the same pair follows it in the collection.
func TestMixedCollectionScenario(t *testing.T) {
	bookings := FromPayloadList([]any{
		map[string]any{"_id": "b1", "creator": "u1", "event": "e1", "status": "active"},
		map[string]any{"_id": "b2", "creator": "u1", "event": "e1", "status": "cancelled"},
	})
	assert.Equal(t, "b1", FindActiveBooking(bookings, "u1", "e1"))
}
