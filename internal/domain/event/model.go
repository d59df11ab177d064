package event

import (
	"time"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

// Coach is the instructor running a class event. Events embed it fully on the
// detail endpoint and reference it by id on the list endpoint.
type Coach struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"`
}

// DisplayName returns the best available human-readable name
func (c *Coach) DisplayName() string {
	if c == nil {
		return ""
	}
	if c.Name != "" {
		return c.Name
	}
	if c.FirstName != "" && c.LastName != "" {
		return c.FirstName + " " + c.LastName
	}
	if c.FirstName != "" {
		return c.FirstName
	}
	return c.LastName
}

// Studio is the location hosting a class event
type Studio struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// Event is a class event snapshot normalized from a backend payload.
// Status holds the backend-reported status mapped onto the canonical set;
// DeriveStatus combines it with wall-clock time for the rendered value.
type Event struct {
	ID           string
	Title        string
	Status       types.EventStatus
	StartTime    *time.Time
	EndTime      *time.Time
	DurationMins int
	Coach        types.Ref[Coach]
	Studio       types.Ref[Studio]
}

// CoachID resolves the coach reference to an identifier, or ""
func (e *Event) CoachID() string {
	id, _ := types.Resolve(e.Coach, func(c *Coach) string { return c.ID })
	return id
}

// StudioID resolves the studio reference to an identifier, or ""
func (e *Event) StudioID() string {
	id, _ := types.Resolve(e.Studio, func(s *Studio) string { return s.ID })
	return id
}

// Candidate key chains per logical field. Order matters: the first present,
// well-typed value wins.
var (
	idKeys       = []string{"_id", "id", "uuid", "eventId", "event_id"}
	titleKeys    = []string{"title", "name", "className", "class_name"}
	statusKeys   = []string{"status", "state", "eventStatus", "event_status"}
	startKeys    = []string{"startTime", "start_time", "start", "startsAt", "starts_at", "startDate", "start_date"}
	endKeys      = []string{"endTime", "end_time", "end", "endsAt", "ends_at", "endDate", "end_date"}
	durationKeys = []string{"duration", "durationMinutes", "duration_minutes", "lengthMinutes", "length_minutes"}
	coachKeys    = []string{"coach", "instructor", "trainer", "coachId", "coach_id"}
	studioKeys   = []string{"studio", "location", "gym", "studioId", "studio_id"}
	listKeys     = []string{"data", "events", "items", "results"}
)

// FromPayload normalizes one raw event record. Fields that cannot be
// resolved stay at their zero value; timestamps that fail to parse are
// treated as absent.
func FromPayload(rec map[string]any) *Event {
	e := &Event{}

	e.ID, _ = types.PickString(rec, idKeys...)
	e.Title, _ = types.PickString(rec, titleKeys...)

	rawStatus, _ := types.PickString(rec, statusKeys...)
	e.Status = types.ParseEventStatus(rawStatus)

	if v, ok := types.PickAny(rec, startKeys...); ok {
		e.StartTime = types.TimestampFromAny(v)
	}
	if v, ok := types.PickAny(rec, endKeys...); ok {
		e.EndTime = types.TimestampFromAny(v)
	}

	if mins, ok := types.PickNumber(rec, durationKeys...); ok && mins > 0 {
		e.DurationMins = int(mins)
	} else if e.StartTime != nil && e.EndTime != nil && e.EndTime.After(*e.StartTime) {
		e.DurationMins = int(e.EndTime.Sub(*e.StartTime) / time.Minute)
	}

	if v, ok := types.PickAny(rec, coachKeys...); ok {
		e.Coach = types.RefFromAny[Coach](v)
	}
	if v, ok := types.PickAny(rec, studioKeys...); ok {
		e.Studio = types.RefFromAny[Studio](v)
	}

	return e
}

// FromPayloadList normalizes an event collection, tolerating the usual
// envelope variants: a bare array, an object wrapping the array under a
// known key, or a single object where an array was expected.
func FromPayloadList(payload any) []*Event {
	records := types.AsRecords(payload)
	if rec, ok := types.AsRecord(payload); ok {
		for _, key := range listKeys {
			if nested := types.AsRecords(rec[key]); nested != nil {
				records = nested
				break
			}
		}
	}

	events := make([]*Event, 0, len(records))
	for _, rec := range records {
		events = append(events, FromPayload(rec))
	}
	return events
}
