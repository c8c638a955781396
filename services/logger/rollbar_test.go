package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core/session"
)

type personRecorder struct {
	set     [][3]string
	cleared int
}

func newTestLogger(buf *bytes.Buffer) (*RollbarLogger, *personRecorder) {
	rec := new(personRecorder)
	l := &RollbarLogger{
		std:         log.New(buf, "", 0),
		setPerson:   func(id, username, email string) { rec.set = append(rec.set, [3]string{id, username, email}) },
		clearPerson: func() { rec.cleared++ },
	}
	return l, rec
}

func TestRollbarLogger_prepare(t *testing.T) {
	err := errors.New("boom")
	extras := map[string]interface{}{"path": "/v1/fees"}
	clerk := session.Identity{ID: 6, Username: "mohan", Name: "Mohan Das", Role: session.Admin}
	head := session.Identity{ID: 1, Username: "lakshmi", Name: "Lakshmi Sundar", Role: session.Admin}

	tests := []struct {
		name        string
		args        []interface{}
		wantArgs    []interface{}
		wantPerson  [][3]string
		wantCleared int
	}{
		{
			name:        "no identity",
			args:        []interface{}{err, extras},
			wantArgs:    []interface{}{"failed", err, extras},
			wantCleared: 1,
		},
		{
			name:       "identity value",
			args:       []interface{}{err, clerk, extras},
			wantArgs:   []interface{}{"failed", err, extras},
			wantPerson: [][3]string{{"6", "mohan", ""}},
		},
		{
			name:       "identity pointer",
			args:       []interface{}{&clerk, err},
			wantArgs:   []interface{}{"failed", err},
			wantPerson: [][3]string{{"6", "mohan", ""}},
		},
		{
			name:       "first identity wins",
			args:       []interface{}{head, err, clerk},
			wantArgs:   []interface{}{"failed", err},
			wantPerson: [][3]string{{"1", "lakshmi", ""}},
		},
		{
			name:        "nil pointer",
			args:        []interface{}{(*session.Identity)(nil), err},
			wantArgs:    []interface{}{"failed", err},
			wantCleared: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, rec := newTestLogger(new(bytes.Buffer))
			got := l.prepare("failed", tt.args)
			assert.Equal(t, tt.wantArgs, got)
			assert.Equal(t, tt.wantPerson, rec.set)
			assert.Equal(t, tt.wantCleared, rec.cleared)
		})
	}
}

func TestRollbarLogger_print(t *testing.T) {
	buf := new(bytes.Buffer)
	l, _ := newTestLogger(buf)

	l.print("tracking vehicles", []interface{}{"vehicle 2", map[string]interface{}{"id": 2}})
	assert.Equal(t, "tracking vehicles\nvehicle 2\nmap[id:2]\n", buf.String())
}
