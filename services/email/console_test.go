package emailsvc

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/tests"
)

func TestConsoleService_SendMessages(t *testing.T) {
	conf := core.NewTestConfig()
	svc := NewConsoleServiceMock(conf, testutil.NewLogger(t))

	svc.SendMessages(
		&core.EmailMessage{
			To:      []mail.Address{{Name: "Raman", Address: "raman.s@example.com"}},
			Subject: "Hello",
			BodyStr: "plain body",
		},
		&core.EmailMessage{Subject: "no recipient", BodyStr: "dropped"},
		&core.EmailMessage{To: []mail.Address{{Address: "empty@example.com"}}, Subject: "no content"},
	)

	sent := svc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "Hello", sent[0].Subject)
	assert.Equal(t, "plain body", sent[0].TextContent)
}

func TestConsoleService_format(t *testing.T) {
	conf := core.NewTestConfig()
	svc := NewConsoleServiceMock(conf, testutil.NewLogger(t))

	body, err := svc.format(core.EmailMessage{
		To:          []mail.Address{{Address: "a@example.com"}, {Address: "b@example.com"}},
		Subject:     "Receipt",
		TextContent: "text part",
		HTMLContent: "<p>html part</p>",
	})
	require.NoError(t, err)

	for _, want := range []string{
		"Subject: [" + conf.AppName + "] Receipt",
		"To: <a@example.com>, <b@example.com>",
		"text/plain",
		"text part",
		"<p>html part</p>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("format() missing %q in:\n%s", want, body)
		}
	}
}
