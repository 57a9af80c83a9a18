// Package queue defines the messages exchanged over the broker and the
// publisher and consumer that carry them.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// CatalogChangedQueue is the durable queue every catalog mutation is
// published to.
const CatalogChangedQueue = "catalog.changed"

// Actions carried by CatalogChangedEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CatalogChangedEvent is published after a venue, artist, show, question or
// drink has been written.  It carries enough to log or fan out the change
// without reading the primary database.
type CatalogChangedEvent struct {
	ID         string `json:"id"`
	App        string `json:"app"`    // fyyur, trivia or coffee
	Entity     string `json:"entity"` // venue, artist, show, question, drink
	Action     string `json:"action"`
	EntityID   uint64 `json:"entity_id"`
	Name       string `json:"name,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// NewCatalogChangedEvent stamps a fresh event with a random id and the
// current UTC time.
func NewCatalogChangedEvent(app, entity, action string, entityID uint64, name string) CatalogChangedEvent {
	return CatalogChangedEvent{
		ID:         uuid.NewString(),
		App:        app,
		Entity:     entity,
		Action:     action,
		EntityID:   entityID,
		Name:       name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
