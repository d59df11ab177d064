package booking

import "context"

// Repository is the fetch-and-mutate collaborator for bookings. Mutations
// trigger snapshot invalidation in the caller; this package only ever sees
// fresh, immutable snapshots.
type Repository interface {
	ListBookings(ctx context.Context) ([]*Booking, error)
	CreateBooking(ctx context.Context, eventID string) (*Booking, error)
	CancelBooking(ctx context.Context, bookingID string) error
}
