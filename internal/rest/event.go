package rest

import (
	"context"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/domain/event"
	ierr "github.com/Gimmir/un1t-mobile-app-sub000/internal/errors"
)

type eventRepository struct {
	client *Client
}

// NewEventRepository returns an event.Repository backed by the studio API
func NewEventRepository(client *Client) event.Repository {
	return &eventRepository{client: client}
}

func (r *eventRepository) ListEvents(ctx context.Context) ([]*event.Event, error) {
	payload, err := r.client.getJSON(ctx, "/v1/events")
	if err != nil {
		return nil, err
	}
	return event.FromPayloadList(payload), nil
}

func (r *eventRepository) GetEvent(ctx context.Context, id string) (*event.Event, error) {
	payload, err := r.client.getJSON(ctx, "/v1/events/"+id)
	if err != nil {
		return nil, err
	}

	events := event.FromPayloadList(payload)
	if len(events) == 0 {
		return nil, ierr.NewError("event not found in response").
			WithHint("The event may have been removed").
			WithReportableDetails(map[string]any{"event_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return events[0], nil
}
