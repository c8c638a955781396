package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
	"github.com/trezcool/shule/storage/database/dummy"
)

// Logger writes every entry to the test log.
type Logger struct {
	t *testing.T
}

var _ core.Logger = (*Logger)(nil)

func NewLogger(t *testing.T) *Logger {
	return &Logger{t: t}
}

func (l *Logger) log(level, msg string, args []interface{}) {
	l.t.Helper()
	if len(args) > 0 {
		l.t.Logf("[%s] %s %v", level, msg, args)
		return
	}
	l.t.Logf("[%s] %s", level, msg)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.t.Helper()
	l.t.Fatalf("[FATAL] %s %v", msg, args)
}

// Publisher records published events; it fails every publish once Err is set.
type Publisher struct {
	mu     sync.Mutex
	Err    error
	events []core.Event
}

var _ core.Publisher = (*Publisher)(nil)

func (p *Publisher) Publish(_ context.Context, evt core.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, evt)
	return nil
}

// Types lists the type of every event published so far.
func (p *Publisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

// NewDB returns an in-memory database; seeded with the demo school when seed is true.
func NewDB(t *testing.T, seed bool) *dummydb.DB {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	if seed {
		if err := dummydb.Seed(db); err != nil {
			t.Fatalf("dummydb.Seed() failed: %v", err)
		}
	}
	return db
}

// NewApp wires an App on db. mailer may be nil.
func NewApp(t *testing.T, db *dummydb.DB, mailer core.EmailService) (*school.App, *Publisher) {
	t.Helper()
	events := new(Publisher)
	app := school.New(school.Deps{
		Config:   core.NewTestConfig(),
		Logger:   NewLogger(t),
		Mailer:   mailer,
		Events:   events,
		Sessions: session.NewMemoryStore(),
		Repos:    dummydb.NewRepositories(db),
	})
	return app, events
}

// Identity returns the fixed account holding role.
func Identity(t *testing.T, role session.Role) session.Identity {
	t.Helper()
	id, err := session.Authenticate(role.String(), "123456")
	if err != nil {
		t.Fatalf("Authenticate(%s) failed: %v", role, err)
	}
	return id
}

func MustNoError(t *testing.T, err error, format string, args ...interface{}) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s failed: %v", fmt.Sprintf(format, args...), err)
	}
}
