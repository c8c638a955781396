package dummydb

import (
	_ "embed"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/activity"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/directory"
	"github.com/trezcool/shule/core/exam"
	"github.com/trezcool/shule/core/fee"
	"github.com/trezcool/shule/core/message"
	"github.com/trezcool/shule/core/social"
	"github.com/trezcool/shule/core/timetable"
	"github.com/trezcool/shule/core/transport"
)

//go:embed seed.json
var seedJSON []byte

type fixtures struct {
	Students     []directory.Student    `json:"students"`
	Staff        []directory.Staff      `json:"staff"`
	Classes      []directory.Class      `json:"classes"`
	Attendance   []attendance.Mark      `json:"attendance"`
	Exams        []exam.Exam            `json:"exams"`
	Results      []exam.Result          `json:"results"`
	Fees         []fee.Fee              `json:"fees"`
	Payments     []fee.Payment          `json:"payments"`
	Messages     []message.Message      `json:"messages"`
	Timetables   []timetable.Timetable  `json:"timetables"`
	Vehicles     []transport.Vehicle    `json:"vehicles"`
	Stops        []transport.Stop       `json:"stops"`
	Allocations  []transport.Allocation `json:"allocations"`
	Journeys     []transport.Journey    `json:"journeys"`
	Activities   []activity.Activity    `json:"activities"`
	Participants []activity.Participant `json:"participants"`
	Posts        []social.Post          `json:"posts"`
}

// Seed replaces the content of db with the demo school's records.
func Seed(db *DB) error {
	var fx fixtures
	if err := json.Unmarshal(seedJSON, &fx); err != nil {
		return errors.Wrap(err, "decoding fixtures")
	}

	now := time.Now().UTC()
	for i := range fx.Vehicles {
		if fx.Vehicles[i].LastUpdated.IsZero() {
			fx.Vehicles[i].LastUpdated = now
		}
	}

	db.students.load(fx.Students)
	db.staff.load(fx.Staff)
	db.classes.load(fx.Classes)
	db.marks.load(fx.Attendance)
	db.exams.load(fx.Exams)
	db.results.load(fx.Results)
	db.fees.load(fx.Fees)
	db.payments.load(fx.Payments)
	db.messages.load(fx.Messages)
	db.timetables.load(fx.Timetables)
	db.vehicles.load(fx.Vehicles)
	db.stops.load(fx.Stops)
	db.allocations.load(fx.Allocations)
	db.journeys.load(fx.Journeys)
	db.activities.load(fx.Activities)
	db.participants.load(fx.Participants)
	db.posts.load(fx.Posts)
	return nil
}
