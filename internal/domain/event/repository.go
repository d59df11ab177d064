package event

import "context"

// Repository is the fetch collaborator for class events. Implementations
// return fresh snapshots; nothing in this package caches or mutates them.
type Repository interface {
	ListEvents(ctx context.Context) ([]*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
}
