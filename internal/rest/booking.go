package rest

import (
	"context"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/domain/booking"
	ierr "github.com/Gimmir/un1t-mobile-app-sub000/internal/errors"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

type bookingRepository struct {
	client *Client
}

// NewBookingRepository returns a booking.Repository backed by the studio API
func NewBookingRepository(client *Client) booking.Repository {
	return &bookingRepository{client: client}
}

func (r *bookingRepository) ListBookings(ctx context.Context) ([]*booking.Booking, error) {
	payload, err := r.client.getJSON(ctx, "/v1/bookings")
	if err != nil {
		return nil, err
	}
	return booking.FromPayloadList(payload), nil
}

func (r *bookingRepository) CreateBooking(ctx context.Context, eventID string) (*booking.Booking, error) {
	if eventID == "" {
		return nil, ierr.NewError("event id is required").
			WithHint("Cannot book a class without an event").
			Mark(ierr.ErrValidation)
	}

	payload, err := r.client.postJSON(ctx, "/v1/bookings",
		map[string]any{"event": eventID},
		map[string]string{"Idempotency-Key": types.GenerateShortIDWithPrefix("bk_")},
	)
	if err != nil {
		return nil, err
	}

	bookings := booking.FromPayloadList(payload)
	if len(bookings) == 0 {
		return nil, ierr.NewError("booking missing from create response").
			WithHint("The booking may still have been created; refresh to confirm").
			WithReportableDetails(map[string]any{"event_id": eventID}).
			Mark(ierr.ErrSystem)
	}
	return bookings[0], nil
}

func (r *bookingRepository) CancelBooking(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return ierr.NewError("booking id is required").
			WithHint("Cannot cancel without a booking").
			Mark(ierr.ErrValidation)
	}
	_, err := r.client.postJSON(ctx, "/v1/bookings/"+bookingID+"/cancel", nil, nil)
	return err
}
