package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/domain/booking"
	ierr "github.com/Gimmir/un1t-mobile-app-sub000/internal/errors"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

// InMemoryBookingRepository simulates the booking endpoints. Created bookings
// are owned by the configured user so ownership matching can be exercised.
type InMemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings []*booking.Booking
	UserID   string
	Err      error
	Calls    int
}

func NewInMemoryBookingRepository(bookings ...*booking.Booking) *InMemoryBookingRepository {
	return &InMemoryBookingRepository{
		bookings: bookings,
		UserID:   types.DefaultUserID,
	}
}

func (r *InMemoryBookingRepository) ListBookings(_ context.Context) ([]*booking.Booking, error) {
	r.mu.Lock()
	r.Calls++
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*booking.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

func (r *InMemoryBookingRepository) CreateBooking(_ context.Context, eventID string) (*booking.Booking, error) {
	if eventID == "" {
		return nil, ierr.NewError("event id is required").
			Mark(ierr.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	b := &booking.Booking{
		ID:      fmt.Sprintf("bk_%d", len(r.bookings)+1),
		Status:  types.BookingStatusActive,
		Creator: types.NewIDRef[booking.Member](r.UserID),
		Event:   types.NewIDRef[booking.EventInfo](eventID),
	}
	r.bookings = append(r.bookings, b)
	return b, nil
}

func (r *InMemoryBookingRepository) CancelBooking(_ context.Context, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, b := range r.bookings {
		if b != nil && b.ID == bookingID {
			b.Status = types.BookingStatusCancelled
			return nil
		}
	}
	return ierr.NewError("booking not found").
		Mark(ierr.ErrNotFound)
}
