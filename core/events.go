package core

import (
	"context"
	"time"
)

// Event types
const (
	EventMessageSent    = "message.sent"
	EventJourneyStarted = "journey.started"
	EventJourneyEnded   = "journey.ended"
)

// Event is a notable change other systems may want to hear about.
type Event struct {
	Type string      `json:"type"`
	At   time.Time   `json:"at"`
	Data interface{} `json:"data"`
}

func NewEvent(typ string, data interface{}) Event {
	return Event{Type: typ, At: time.Now().UTC(), Data: data}
}

// Publisher is any service that can publish events.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}
