package service

import (
	"context"
	"time"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/cache"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/config"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/domain/booking"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/domain/event"
	ierr "github.com/Gimmir/un1t-mobile-app-sub000/internal/errors"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/logger"
	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

// EventView is a class event reconciled for rendering: the time-corrected
// status, resolved coach and studio names, and the member's own live booking
// on the event when one exists.
type EventView struct {
	ID           string
	Title        string
	Status       types.EventStatus
	StartTime    *time.Time
	EndTime      *time.Time
	DurationMins int
	CoachName    string
	StudioName   string
	// BookingID is the member's live booking on this event, "" when none
	BookingID string
}

// IsBooked reports whether the member holds a live booking on the event
func (v *EventView) IsBooked() bool {
	return v.BookingID != ""
}

// ScheduleService reconciles the class schedule with the member's bookings
type ScheduleService struct {
	events   event.Repository
	bookings booking.Repository
	cache    cache.Cache
	cfg      *config.Configuration
	logger   *logger.Logger
}

func NewScheduleService(
	events event.Repository,
	bookings booking.Repository,
	c cache.Cache,
	cfg *config.Configuration,
	log *logger.Logger,
) *ScheduleService {
	return &ScheduleService{
		events:   events,
		bookings: bookings,
		cache:    c,
		cfg:      cfg,
		logger:   log,
	}
}

// ListEvents fetches the schedule and the member's bookings and reconciles
// them into views. The booking fetch degrades gracefully: when it fails the
// schedule still renders, just without ownership information.
func (s *ScheduleService) ListEvents(ctx context.Context, now time.Time) ([]*EventView, error) {
	events, err := s.listEventsCached(ctx)
	if err != nil {
		return nil, err
	}

	bookings := s.listBookingsCached(ctx)
	userID := s.userID(ctx)

	views := make([]*EventView, 0, len(events))
	for _, e := range events {
		if e == nil || e.ID == "" {
			continue
		}

		view := &EventView{
			ID:           e.ID,
			Title:        e.Title,
			Status:       event.DeriveStatus(e, now),
			StartTime:    e.StartTime,
			EndTime:      e.EndTime,
			DurationMins: e.DurationMins,
			BookingID:    booking.FindActiveBooking(bookings, userID, e.ID),
		}

		if _, coach := types.Resolve(e.Coach, func(c *event.Coach) string { return c.ID }); coach != nil {
			view.CoachName = coach.DisplayName()
		}
		if _, studio := types.Resolve(e.Studio, func(st *event.Studio) string { return st.ID }); studio != nil {
			view.StudioName = studio.Name
		}

		if live := booking.LiveBookings(bookings, userID, e.ID); len(live) > 1 {
			s.logger.Warnw("member holds multiple live bookings on one event",
				"event_id", e.ID,
				"booking_ids", live,
			)
		}

		views = append(views, view)
	}

	return views, nil
}

// BookEvent creates a booking for the member on the given event and drops the
// snapshots the mutation invalidates.
func (s *ScheduleService) BookEvent(ctx context.Context, eventID string) (*booking.Booking, error) {
	if eventID == "" {
		return nil, ierr.NewError("event id is required").
			WithHint("Cannot book a class without an event id").
			Mark(ierr.ErrValidation)
	}

	bookings := s.listBookingsCached(ctx)
	if existing := booking.FindActiveBooking(bookings, s.userID(ctx), eventID); existing != "" {
		return nil, ierr.NewError("event is already booked").
			WithHint("A live booking already exists for this class").
			WithReportableDetails(map[string]any{
				"event_id":   eventID,
				"booking_id": existing,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	b, err := s.bookings.CreateBooking(ctx, eventID)
	if err != nil {
		return nil, err
	}

	s.invalidateScheduleSnapshots(ctx)
	s.logger.Infow("booked class event", "event_id", eventID, "booking_id", b.ID)
	return b, nil
}

// CancelBooking cancels one of the member's bookings and drops the snapshots
// the mutation invalidates
func (s *ScheduleService) CancelBooking(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return ierr.NewError("booking id is required").
			Mark(ierr.ErrValidation)
	}

	if err := s.bookings.CancelBooking(ctx, bookingID); err != nil {
		return err
	}

	s.invalidateScheduleSnapshots(ctx)
	s.logger.Infow("cancelled booking", "booking_id", bookingID)
	return nil
}

func (s *ScheduleService) userID(ctx context.Context) string {
	if id := types.GetUserID(ctx); id != "" {
		return id
	}
	return s.cfg.Session.UserID
}

func (s *ScheduleService) listEventsCached(ctx context.Context) ([]*event.Event, error) {
	key := cache.PrefixEvent + "list"
	if cached, found := s.cache.Get(ctx, key); found {
		if events, ok := cached.([]*event.Event); ok {
			return events, nil
		}
	}

	events, err := s.events.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, events, s.cfg.Cache.TTL)
	return events, nil
}

func (s *ScheduleService) listBookingsCached(ctx context.Context) []*booking.Booking {
	key := cache.PrefixBooking + "list"
	if cached, found := s.cache.Get(ctx, key); found {
		if bookings, ok := cached.([]*booking.Booking); ok {
			return bookings
		}
	}

	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		s.logger.Warnw("failed to fetch bookings, rendering schedule without ownership",
			"error", err,
		)
		return nil
	}
	s.cache.Set(ctx, key, bookings, s.cfg.Cache.TTL)
	return bookings
}

func (s *ScheduleService) invalidateScheduleSnapshots(ctx context.Context) {
	s.cache.DeleteByPrefix(ctx, cache.PrefixBooking)
	s.cache.DeleteByPrefix(ctx, cache.PrefixEvent)
}
