package eventsvc

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// NatsPublisher publishes events as JSON on `<subject>.<event type>`.
type NatsPublisher struct {
	conn    *nats.Conn
	subject string
	logger  core.Logger
}

var _ core.Publisher = (*NatsPublisher)(nil)

func NewNatsPublisher(conf core.NatsConfig, logger core.Logger) (*NatsPublisher, error) {
	nc, err := nats.Connect(conf.URL, nats.Name("shule"))
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to %s", conf.URL)
	}
	logger.Info("NATS publisher initialized", map[string]interface{}{"url": conf.URL, "subject": conf.Subject})
	return &NatsPublisher{conn: nc, subject: conf.Subject, logger: logger}, nil
}

func (p *NatsPublisher) Publish(ctx context.Context, evt core.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return errors.Wrap(err, "marshalling event")
	}
	subj := Subject(p.subject, evt.Type)
	if err := p.conn.Publish(subj, data); err != nil {
		return errors.Wrapf(err, "publishing to %s", subj)
	}
	p.logger.Debug("event published", map[string]interface{}{"subject": subj})
	return nil
}

// Close flushes pending events and closes the connection.
func (p *NatsPublisher) Close() error {
	defer p.conn.Close()
	return p.conn.Flush()
}

// Subject returns the subject events of type typ are published on.
func Subject(prefix, typ string) string {
	if prefix == "" {
		return typ
	}
	return prefix + "." + typ
}
