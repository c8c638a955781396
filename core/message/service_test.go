package message_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/message"
	"github.com/trezcool/shule/core/session"
	"github.com/trezcool/shule/tests"
)

func subjects(msgs []message.Message) []string {
	s := make([]string, 0, len(msgs))
	for _, m := range msgs {
		s = append(s, m.Subject)
	}
	return s
}

func TestService_InboxOutbox(t *testing.T) {
	ctx := context.Background()
	app, events := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	teacher := testutil.Identity(t, session.Teacher)
	parent := testutil.Identity(t, session.Parent)

	inbox, err := app.Messages.Inbox(teacher)
	require.NoError(t, err)
	assert.Equal(t, []string{"School Holiday", "Staff Meeting", "Annual Day Celebration"}, subjects(inbox))

	msg, err := app.Messages.Send(ctx, teacher, message.NewMessage{
		Audience: message.ToParents,
		Subject:  "Sports kit",
		Message:  "Please send sports kits on Monday.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Parents", msg.To)
	assert.Equal(t, "Teacher User", msg.From)
	assert.Equal(t, []string{core.EventMessageSent}, events.Types())

	outbox, err := app.Messages.Outbox(teacher)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sports kit"}, subjects(outbox))

	inbox, err = app.Messages.Inbox(parent)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sports kit", "School Holiday", "Parent-Teacher Meeting", "Annual Day Celebration"}, subjects(inbox))

	require.NoError(t, app.Messages.Remove(msg.ID))
	assert.True(t, core.IsNotFound(app.Messages.Remove(msg.ID)))
}

func TestService_SendSurvivesPublishFailure(t *testing.T) {
	app, events := testutil.NewApp(t, testutil.NewDB(t, false), nil)
	events.Err = errors.New("broker down")

	msg, err := app.Messages.Send(context.Background(), testutil.Identity(t, session.Admin), message.NewMessage{
		Audience: message.ToClass,
		Class:    "10",
		Section:  "A",
		Subject:  "Test",
		Message:  "Tomorrow",
	})
	require.NoError(t, err)
	assert.Equal(t, "Class 10A", msg.To)

	all, err := app.Messages.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
