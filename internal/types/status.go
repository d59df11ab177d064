package types

import (
	"strings"

	"github.com/samber/lo"

	ierr "github.com/Gimmir/un1t-mobile-app-sub000/internal/errors"
)

// EventStatus is the canonical lifecycle status of a class event
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusFull      EventStatus = "full"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusFinished  EventStatus = "finished"
)

func (s EventStatus) String() string {
	return string(s)
}

func (s EventStatus) Validate() error {
	allowed := []EventStatus{
		EventStatusActive,
		EventStatusFull,
		EventStatusCancelled,
		EventStatusFinished,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid event status").
			WithHint("Invalid event status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// eventStatusSynonyms maps backend status variants onto the four canonical
// values. Anything unmapped defaults to active, the safest assumption for
// an event the backend still serves.
var eventStatusSynonyms = map[string]EventStatus{
	"active":     EventStatusActive,
	"scheduled":  EventStatusActive,
	"open":       EventStatusActive,
	"published":  EventStatusActive,
	"confirmed":  EventStatusActive,
	"full":       EventStatusFull,
	"sold_out":   EventStatusFull,
	"soldout":    EventStatusFull,
	"booked_out": EventStatusFull,
	"waitlist":   EventStatusFull,
	"cancelled":  EventStatusCancelled,
	"canceled":   EventStatusCancelled,
	"annulled":   EventStatusCancelled,
	"annule":     EventStatusCancelled,
	"finished":   EventStatusFinished,
	"completed":  EventStatusFinished,
	"complete":   EventStatusFinished,
	"done":       EventStatusFinished,
	"ended":      EventStatusFinished,
	"past":       EventStatusFinished,
	"termine":    EventStatusFinished,
}

// ParseEventStatus maps a raw backend status string onto a canonical
// EventStatus via the synonym table. Unrecognized values default to active.
func ParseEventStatus(raw string) EventStatus {
	key := strings.ToLower(strings.TrimSpace(raw))
	if status, ok := eventStatusSynonyms[key]; ok {
		return status
	}
	return EventStatusActive
}

// BookingStatus is the status of a member's booking on a class event
type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
	BookingStatusRefunded  BookingStatus = "refunded"
)

func (s BookingStatus) String() string {
	return string(s)
}

// IsLive reports whether the booking still counts toward ownership of an
// event. Only cancelled and refunded bookings are dead; completed and
// no_show bookings remain attached to the event.
func (s BookingStatus) IsLive() bool {
	return s != BookingStatusCancelled && s != BookingStatusRefunded
}

// ParseBookingStatus normalizes a raw booking status string
func ParseBookingStatus(raw string) BookingStatus {
	key := strings.ToLower(strings.TrimSpace(raw))
	switch key {
	case "canceled":
		return BookingStatusCancelled
	case "noshow", "no-show":
		return BookingStatusNoShow
	case "":
		return BookingStatusActive
	}
	return BookingStatus(key)
}

// PlanChange classifies a catalog price relative to the member's current
// subscription tier
type PlanChange string

const (
	PlanChangeCurrent   PlanChange = "current"
	PlanChangeUpgrade   PlanChange = "upgrade"
	PlanChangeDowngrade PlanChange = "downgrade"
	PlanChangeUnknown   PlanChange = "unknown"
)

func (c PlanChange) String() string {
	return string(c)
}
