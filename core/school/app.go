// Package school assembles the record services into one application state shared by the binaries.
package school

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/activity"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/directory"
	"github.com/trezcool/shule/core/exam"
	"github.com/trezcool/shule/core/fee"
	"github.com/trezcool/shule/core/message"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/core/session"
	"github.com/trezcool/shule/core/social"
	"github.com/trezcool/shule/core/timetable"
	"github.com/trezcool/shule/core/transport"
)

type (
	Repositories struct {
		Directory  directory.Repository
		Attendance attendance.Repository
		Exams      exam.Repository
		Fees       fee.Repository
		Messages   message.Repository
		Timetables timetable.Repository
		Transport  transport.Repository
		Activities activity.Repository
		Social     social.Repository
	}

	Deps struct {
		Config   *core.Config
		Logger   core.Logger
		Mailer   core.EmailService
		Events   core.Publisher
		Sessions session.Store
		Repos    Repositories
	}

	App struct {
		Config     *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		Sessions   *session.Manager
		Directory  *directory.Service
		Attendance *attendance.Service
		Exams      *exam.Service
		Fees       *fee.Service
		Messages   *message.Service
		Timetables *timetable.Service
		Transport  *transport.Service
		Activities *activity.Service
		Social     *social.Service
		Reports    *report.Aggregator
		Tracker    *transport.Tracker
	}
)

func New(deps Deps) *App {
	validate, translator := core.NewValidator()
	app := &App{
		Config:     deps.Config,
		Logger:     deps.Logger,
		Validate:   validate,
		Translator: translator,

		Sessions:   session.NewManager(deps.Sessions),
		Directory:  directory.NewService(deps.Repos.Directory),
		Attendance: attendance.NewService(deps.Repos.Attendance),
		Exams:      exam.NewService(deps.Repos.Exams),
		Fees:       fee.NewService(deps.Repos.Fees, deps.Mailer, deps.Config.AppName),
		Messages:   message.NewService(deps.Repos.Messages, deps.Events, deps.Logger),
		Timetables: timetable.NewService(deps.Repos.Timetables),
		Transport:  transport.NewService(deps.Repos.Transport, deps.Events, deps.Logger),
		Activities: activity.NewService(deps.Repos.Activities),
		Social:     social.NewService(deps.Repos.Social),
	}
	app.Reports = report.NewAggregator(app.Directory, app.Attendance, app.Exams, app.Fees)
	app.Tracker = transport.NewTracker(app.Transport, deps.Config.Tracker, deps.Logger)
	return app
}

// Run starts the background workers and blocks until ctx is done.
func (app *App) Run(ctx context.Context) {
	app.Tracker.Run(ctx)
}

// RemoveStudent deletes a student with every record referencing it.
func (app *App) RemoveStudent(id int) error {
	if err := app.Directory.RemoveStudent(id); err != nil {
		return err
	}

	cascade := []struct {
		what   string
		remove func(int) error
	}{
		{"attendance marks", app.Attendance.RemoveByStudent},
		{"exam results", app.Exams.RemoveResultsByStudent},
		{"fee payments", app.Fees.RemovePaymentsByStudent},
		{"transport allocations", app.Transport.RemoveAllocationsByStudent},
		{"activity participations", app.Activities.RemoveParticipantsByStudent},
	}
	for _, c := range cascade {
		if err := c.remove(id); err != nil {
			return errors.Wrapf(err, "deleting student %s", c.what)
		}
	}
	return nil
}

// RemoveStaff deletes a staff member and strips them from activity coordinators.
func (app *App) RemoveStaff(id int) error {
	if err := app.Directory.RemoveStaff(id); err != nil {
		return err
	}
	if err := app.Activities.RemoveCoordinator(id); err != nil {
		return errors.Wrap(err, "deleting staff coordinations")
	}
	return nil
}

// TakeAttendance records a class section's register against its current roster.
func (app *App) TakeAttendance(reg attendance.Register) ([]attendance.Mark, error) {
	roster, err := app.Directory.StudentIDs(reg.Class, reg.Section)
	if err != nil {
		return nil, errors.Wrap(err, "getting roster")
	}
	return app.Attendance.Record(reg, roster)
}

func (app *App) AttendanceSheet(date, class, section string) ([]attendance.Mark, error) {
	roster, err := app.Directory.StudentIDs(class, section)
	if err != nil {
		return nil, errors.Wrap(err, "getting roster")
	}
	return app.Attendance.Sheet(date, class, section, roster)
}

func (app *App) StudentFees(studentID int) ([]fee.Payment, error) {
	student, err := app.Directory.GetStudent(studentID)
	if err != nil {
		return nil, err
	}
	return app.Fees.StudentFees(student)
}

func (app *App) CollectFee(feeID int, np fee.NewPayment) (fee.Payment, error) {
	student, err := app.Directory.GetStudent(np.StudentID)
	if err != nil {
		return fee.Payment{}, err
	}
	return app.Fees.Collect(student, feeID, np)
}

func (app *App) RecordResults(examID int, entries []exam.ResultEntry) ([]exam.Result, error) {
	for _, e := range entries {
		if _, err := app.Directory.GetStudent(e.StudentID); err != nil {
			return nil, err
		}
	}
	return app.Exams.RecordResults(examID, entries)
}

func (app *App) AllocateTransport(na transport.NewAllocation) (transport.Allocation, error) {
	if _, err := app.Directory.GetStudent(na.StudentID); err != nil {
		return transport.Allocation{}, err
	}
	return app.Transport.Allocate(na)
}

// AddActivity creates an activity once every coordinator is a known staff member.
func (app *App) AddActivity(na activity.NewActivity) (activity.Activity, error) {
	for _, id := range na.Coordinators {
		if _, err := app.Directory.GetStaff(id); err != nil {
			return activity.Activity{}, err
		}
	}
	return app.Activities.Add(na)
}

func (app *App) RegisterParticipant(activityID int, np activity.NewParticipant) (activity.Participant, error) {
	if _, err := app.Directory.GetStudent(np.StudentID); err != nil {
		return activity.Participant{}, err
	}
	return app.Activities.Register(activityID, np)
}
