package logsvc

import (
	"log"
	"strconv"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/session"
)

// RollbarLogger reports to Rollbar and mirrors every entry to std.
type RollbarLogger struct {
	std *log.Logger

	// person hooks, swapped in tests
	setPerson   func(id, username, email string)
	clearPerson func()
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{
		std:         std,
		setPerson:   rollbar.SetPerson,
		clearPerson: rollbar.ClearPerson,
	}
}

func (l *RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// caller extracts the first session identity from args; the rest are kept in order.
// Both session.Identity and *session.Identity are accepted, a nil pointer is dropped.
func caller(args []interface{}) (rest []interface{}, id *session.Identity) {
	rest = make([]interface{}, 0, len(args))
	for _, arg := range args {
		var found *session.Identity
		switch v := arg.(type) {
		case session.Identity:
			found = &v
		case *session.Identity:
			if v == nil {
				continue
			}
			found = v
		default:
			rest = append(rest, arg)
			continue
		}
		if id == nil {
			id = found
		}
	}
	return rest, id
}

// expected fmt: msg | error, map[string]interface{}, session.Identity
func (l *RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	rest, id := caller(args)
	if id != nil {
		l.setPerson(strconv.Itoa(id.ID), id.Username, "")
	} else {
		l.clearPerson()
	}
	return append([]interface{}{msg}, rest...)
}

func (l *RollbarLogger) print(msg string, args []interface{}) {
	l.std.Println(msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.print(msg, args)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.print(msg, args)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.print(msg, args)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.print(msg, args)
}

// Fatal waits for queued reports before exiting.
func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	l.print(msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
