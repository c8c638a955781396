package eventsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/tests"
)

func TestSubject(t *testing.T) {
	tests := []struct {
		prefix, typ, want string
	}{
		{"shule.events", core.EventMessageSent, "shule.events.message.sent"},
		{"", core.EventJourneyEnded, "journey.ended"},
	}
	for _, tt := range tests {
		if got := Subject(tt.prefix, tt.typ); got != tt.want {
			t.Errorf("Subject(%q, %q) = %q; want %q", tt.prefix, tt.typ, got, tt.want)
		}
	}
}

func TestNew_withoutURL(t *testing.T) {
	pub, closeFn, err := New(core.NatsConfig{Subject: "shule.events"}, testutil.NewLogger(t))
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	_, ok := pub.(*LogPublisher)
	assert.True(t, ok, "New() = %T; want *LogPublisher", pub)
	assert.NoError(t, pub.Publish(context.Background(), core.NewEvent(core.EventMessageSent, map[string]int{"id": 1})))
}

func TestLogPublisher_unmarshallableData(t *testing.T) {
	pub := NewLogPublisher(testutil.NewLogger(t))
	err := pub.Publish(context.Background(), core.NewEvent("bad", make(chan int)))
	assert.Error(t, err)
}

func TestNew_unreachableBroker(t *testing.T) {
	_, _, err := New(core.NatsConfig{URL: "nats://127.0.0.1:1", Subject: "shule.events"}, testutil.NewLogger(t))
	assert.Error(t, err)
}
