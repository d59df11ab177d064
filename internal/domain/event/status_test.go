package event

import (
	"testing"
	"time"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

var now = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func ts(s string) *time.Time {
	return types.ParseTimestamp(s)
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name  string
		event *Event
		want  types.EventStatus
	}{
		{
			name: "active with past end is finished",
			event: &Event{
				Status:    types.EventStatusActive,
				StartTime: ts("2024-01-01T09:00:00Z"),
				EndTime:   ts("2024-01-01T10:00:00Z"),
			},
			want: types.EventStatusFinished,
		},
		{
			name: "active with future end stays active",
			event: &Event{
				Status:    types.EventStatusActive,
				StartTime: ts("2024-06-02T09:00:00Z"),
				EndTime:   ts("2024-06-02T10:00:00Z"),
			},
			want: types.EventStatusActive,
		},
		{
			name: "cancelled passes through regardless of time",
			event: &Event{
				Status:  types.EventStatusCancelled,
				EndTime: ts("2024-01-01T10:00:00Z"),
			},
			want: types.EventStatusCancelled,
		},
		{
			name: "full passes through",
			event: &Event{
				Status:    types.EventStatusFull,
				StartTime: ts("2024-06-02T09:00:00Z"),
			},
			want: types.EventStatusFull,
		},
		{
			name: "past start without end or duration is finished",
			event: &Event{
				Status:    types.EventStatusActive,
				StartTime: ts("2024-05-31T09:00:00Z"),
			},
			want: types.EventStatusFinished,
		},
		{
			name: "past start with duration still running stays active",
			event: &Event{
				Status:       types.EventStatusActive,
				StartTime:    ts("2024-05-31T23:30:00Z"),
				DurationMins: 60,
			},
			want: types.EventStatusActive,
		},
		{
			name: "past start with elapsed duration is finished",
			event: &Event{
				Status:       types.EventStatusActive,
				StartTime:    ts("2024-05-31T09:00:00Z"),
				DurationMins: 45,
			},
			want: types.EventStatusFinished,
		},
		{
			name:  "no timestamps at all defaults to active",
			event: &Event{Status: types.EventStatusActive},
			want:  types.EventStatusActive,
		},
		{
			name:  "nil event defaults to active",
			event: nil,
			want:  types.EventStatusActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(tt.event, now)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}

			// re-deriving with the derived status must be stable
			if tt.event != nil {
				rederived := *tt.event
				rederived.Status = got
				if again := DeriveStatus(&rederived, now); again != got {
					t.Errorf("derivation not idempotent: %v then %v", got, again)
				}
			}
		})
	}
}

func TestFromPayload(t *testing.T) {
	rec := map[string]any{
		"_id":        "evt_1",
		"title":      "HIIT 45",
		"status":     "sold_out",
		"start_time": "2024-01-01T09:00:00Z",
		"end_time":   "2024-01-01T09:45:00Z",
		"coach":      map[string]any{"_id": "coach_1", "firstName": "Ana", "lastName": "Silva"},
		"studio":     "studio_ldn",
	}

	e := FromPayload(rec)
	if e.ID != "evt_1" {
		t.Errorf("id: got %q", e.ID)
	}
	if e.Status != types.EventStatusFull {
		t.Errorf("status: got %v, want full", e.Status)
	}
	if e.DurationMins != 45 {
		t.Errorf("derived duration: got %d, want 45", e.DurationMins)
	}
	if e.CoachID() != "coach_1" {
		t.Errorf("coach id: got %q", e.CoachID())
	}
	if e.Coach.Entity() == nil || e.Coach.Entity().DisplayName() != "Ana Silva" {
		t.Errorf("coach entity not decoded: %+v", e.Coach.Entity())
	}
	if e.StudioID() != "studio_ldn" {
		t.Errorf("studio id: got %q", e.StudioID())
	}
}

func TestFromPayloadMalformedDates(t *testing.T) {
	e := FromPayload(map[string]any{
		"id":        "evt_2",
		"status":    "active",
		"startTime": "not a date",
	})
	if e.StartTime != nil {
		t.Errorf("malformed start should be absent, got %v", e.StartTime)
	}
	if got := DeriveStatus(e, now); got != types.EventStatusActive {
		t.Errorf("deriver should fall back to active, got %v", got)
	}
}

func TestFromPayloadList(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		events := FromPayloadList([]any{
			map[string]any{"_id": "a"},
			map[string]any{"_id": "b"},
		})
		if len(events) != 2 {
			t.Fatalf("got %d events", len(events))
		}
	})

	t.Run("enveloped under data", func(t *testing.T) {
		events := FromPayloadList(map[string]any{
			"data": []any{map[string]any{"_id": "a"}},
		})
		if len(events) != 1 || events[0].ID != "a" {
			t.Fatalf("got %+v", events)
		}
	})

	t.Run("single object where array expected", func(t *testing.T) {
		events := FromPayloadList(map[string]any{"_id": "solo"})
		if len(events) != 1 || events[0].ID != "solo" {
			t.Fatalf("got %+v", events)
		}
	})
}
