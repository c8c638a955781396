package message

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/session"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound = core.NewNotFoundError("message")
)

type (
	Repository interface {
		CreateMessage(m Message) (Message, error)
		// QueryMessages returns every message in sending order.
		QueryMessages() ([]Message, error)
		DeleteMessage(id int) error
	}

	Service struct {
		repo   Repository
		events core.Publisher
		logger core.Logger
	}
)

func NewService(repo Repository, events core.Publisher, logger core.Logger) *Service {
	return &Service{repo: repo, events: events, logger: logger}
}

// Send stores a message from id dated today and publishes it.
func (svc *Service) Send(ctx context.Context, id session.Identity, nm NewMessage) (Message, error) {
	msg, err := svc.repo.CreateMessage(Message{
		From:    id.Name,
		To:      Recipient(nm.Audience, nm.Class, nm.Section, nm.Person),
		Subject: nm.Subject,
		Message: nm.Message,
		Date:    nowFunc().Format(core.DateLayout),
	})
	if err != nil {
		return Message{}, errors.Wrap(err, "creating message")
	}

	if err := svc.events.Publish(ctx, core.NewEvent(core.EventMessageSent, msg)); err != nil {
		// the message is stored; subscribers will miss it
		svc.logger.Warn("publishing message.sent", errors.Wrap(err, "publishing event"), id)
	}
	return msg, nil
}

// List returns messages newest first.
func (svc *Service) List() ([]Message, error) {
	msgs, err := svc.repo.QueryMessages()
	if err != nil {
		return nil, err
	}
	return newestFirst(msgs), nil
}

// Inbox returns the messages addressed to id, newest first.
func (svc *Service) Inbox(id session.Identity) ([]Message, error) {
	return svc.filter(func(m Message) bool { return m.IsFor(id) })
}

// Outbox returns the messages sent by id, newest first.
func (svc *Service) Outbox(id session.Identity) ([]Message, error) {
	return svc.filter(func(m Message) bool { return m.From == id.Name })
}

func (svc *Service) Remove(id int) error {
	return svc.repo.DeleteMessage(id)
}

func (svc *Service) filter(keep func(Message) bool) ([]Message, error) {
	msgs, err := svc.List()
	if err != nil {
		return nil, errors.Wrap(err, "listing messages")
	}
	filtered := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if keep(m) {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

func newestFirst(msgs []Message) []Message {
	reversed := make([]Message, len(msgs))
	for i, m := range msgs {
		reversed[len(msgs)-1-i] = m
	}
	return reversed
}
