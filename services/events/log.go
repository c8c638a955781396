package eventsvc

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// LogPublisher writes events to the logger; used when no broker is configured.
type LogPublisher struct {
	logger core.Logger
}

var _ core.Publisher = (*LogPublisher)(nil)

func NewLogPublisher(logger core.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, evt core.Event) error {
	data, err := json.Marshal(evt.Data)
	if err != nil {
		return errors.Wrap(err, "marshalling event")
	}
	p.logger.Info("event: "+evt.Type, map[string]interface{}{"data": string(data)})
	return nil
}

// New returns a NATS publisher when conf.URL is set, and a LogPublisher otherwise.
func New(conf core.NatsConfig, logger core.Logger) (core.Publisher, func() error, error) {
	if conf.URL == "" {
		return NewLogPublisher(logger), func() error { return nil }, nil
	}
	p, err := NewNatsPublisher(conf, logger)
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}
