package booking

import (
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

// Member is the user who created a booking, as embedded by some endpoints
type Member struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// EventInfo is the event a booking is attached to, as embedded by some
// endpoints. Bookings reference events polymorphically; only the identifier
// is needed for ownership matching.
type EventInfo struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

// Booking is a member's booking on a class event, normalized from a backend
// payload
type Booking struct {
	ID      string
	Status  types.BookingStatus
	Creator types.Ref[Member]
	Event   types.Ref[EventInfo]
}

// CreatorID resolves the creator reference, or ""
func (b *Booking) CreatorID() string {
	id, _ := types.Resolve(b.Creator, func(m *Member) string { return m.ID })
	return id
}

// EventID resolves the event reference, or ""
func (b *Booking) EventID() string {
	id, _ := types.Resolve(b.Event, func(e *EventInfo) string { return e.ID })
	return id
}

// IsLive reports whether the booking counts toward event ownership
func (b *Booking) IsLive() bool {
	return b.Status.IsLive()
}

var (
	idKeys      = []string{"_id", "id", "uuid", "bookingId", "booking_id"}
	statusKeys  = []string{"status", "state", "bookingStatus", "booking_status"}
	creatorKeys = []string{"creator", "user", "member", "createdBy", "created_by", "userId", "user_id"}
	eventKeys   = []string{"event", "class", "session", "eventId", "event_id"}
	listKeys    = []string{"data", "bookings", "items", "results"}
)

// FromPayload normalizes one raw booking record
func FromPayload(rec map[string]any) *Booking {
	b := &Booking{}

	b.ID, _ = types.PickString(rec, idKeys...)

	rawStatus, _ := types.PickString(rec, statusKeys...)
	b.Status = types.ParseBookingStatus(rawStatus)

	if v, ok := types.PickAny(rec, creatorKeys...); ok {
		b.Creator = types.RefFromAny[Member](v)
	}
	if v, ok := types.PickAny(rec, eventKeys...); ok {
		b.Event = types.RefFromAny[EventInfo](v)
	}

	return b
}

// FromPayloadList normalizes a booking collection, preserving source order.
// Order matters: ownership matching documents a first-in-collection
// tie-break for duplicate live bookings.
func FromPayloadList(payload any) []*Booking {
	records := types.AsRecords(payload)
	if rec, ok := types.AsRecord(payload); ok {
		for _, key := range listKeys {
			if nested := types.AsRecords(rec[key]); nested != nil {
				records = nested
				break
			}
		}
	}

	bookings := make([]*Booking, 0, len(records))
	for _, rec := range records {
		bookings = append(bookings, FromPayload(rec))
	}
	return bookings
}
