package event

import (
	"time"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

// DeriveStatus combines the backend-reported status with wall-clock time.
// The backend is authoritative for cancellation and fullness, but it is known
// to keep reporting "active" for events whose end has already passed, so an
// active status is overridden to finished once the event is over.
//
// The derivation is idempotent and never promotes a finished or cancelled
// event back to active.
func DeriveStatus(e *Event, now time.Time) types.EventStatus {
	if e == nil {
		return types.EventStatusActive
	}
	if e.Status != types.EventStatusActive {
		return e.Status
	}

	if e.EndTime != nil {
		if e.EndTime.Before(now) {
			return types.EventStatusFinished
		}
		return types.EventStatusActive
	}

	if e.StartTime != nil && e.StartTime.Before(now) {
		if e.DurationMins > 0 {
			end := e.StartTime.Add(time.Duration(e.DurationMins) * time.Minute)
			if end.Before(now) {
				return types.EventStatusFinished
			}
			return types.EventStatusActive
		}
		// started in the past with no exploitable duration
		return types.EventStatusFinished
	}

	return types.EventStatusActive
}
