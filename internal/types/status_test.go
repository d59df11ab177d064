package types

import (
	"testing"
)

func TestParseEventStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want EventStatus
	}{
		{"active", EventStatusActive},
		{"ACTIVE", EventStatusActive},
		{" scheduled ", EventStatusActive},
		{"sold_out", EventStatusFull},
		{"soldout", EventStatusFull},
		{"booked_out", EventStatusFull},
		{"canceled", EventStatusCancelled},
		{"cancelled", EventStatusCancelled},
		{"completed", EventStatusFinished},
		{"done", EventStatusFinished},
		{"ended", EventStatusFinished},
		{"termine", EventStatusFinished},
		// unmapped values default to active
		{"mystery_status", EventStatusActive},
		{"", EventStatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := ParseEventStatus(tt.raw); got != tt.want {
				t.Errorf("ParseEventStatus(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBookingStatusIsLive(t *testing.T) {
	live := []BookingStatus{
		BookingStatusActive,
		BookingStatusPending,
		BookingStatusCompleted,
		BookingStatusNoShow,
	}
	for _, s := range live {
		if !s.IsLive() {
			t.Errorf("expected %v to be live", s)
		}
	}

	dead := []BookingStatus{BookingStatusCancelled, BookingStatusRefunded}
	for _, s := range dead {
		if s.IsLive() {
			t.Errorf("expected %v to be dead", s)
		}
	}
}

func TestParseBookingStatus(t *testing.T) {
	if got := ParseBookingStatus("CANCELED"); got != BookingStatusCancelled {
		t.Errorf("got %v, want cancelled", got)
	}
	if got := ParseBookingStatus("no-show"); got != BookingStatusNoShow {
		t.Errorf("got %v, want no_show", got)
	}
	if got := ParseBookingStatus(""); got != BookingStatusActive {
		t.Errorf("got %v, want active default", got)
	}
}

func TestEventStatusValidate(t *testing.T) {
	if err := EventStatusFull.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := EventStatus("sold_out").Validate(); err == nil {
		t.Fatal("expected validation error for non-canonical status")
	}
}
