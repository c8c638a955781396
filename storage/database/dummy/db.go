package dummydb

import (
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

// DB holds every collection in memory. All state is lost when the process exits.
type DB struct {
	students *table[directory.Student]
	staff    *table[directory.Staff]
	classes  *table[directory.Class]

	marks *table[attendance.Mark]

	exams   *table[exam.Exam]
	results *table[exam.Result]

	fees     *table[fee.Fee]
	payments *table[fee.Payment]

	messages   *table[message.Message]
	timetables *table[timetable.Timetable]

	vehicles    *table[transport.Vehicle]
	stops       *table[transport.Stop]
	allocations *table[transport.Allocation]
	journeys    *table[transport.Journey]

	activities   *table[activity.Activity]
	participants *table[activity.Participant]

	posts *table[social.Post]
}

func Open() (*DB, error) {
	db := &DB{
		students: newTable(func(s *directory.Student) *int { return &s.ID }),
		staff:    newTable(func(s *directory.Staff) *int { return &s.ID }),
		classes:  newTable(func(c *directory.Class) *int { return &c.ID }),

		marks: newTable[attendance.Mark](nil),

		exams:   newTable(func(e *exam.Exam) *int { return &e.ID }),
		results: newTable[exam.Result](nil),

		fees:     newTable(func(f *fee.Fee) *int { return &f.ID }),
		payments: newTable(func(p *fee.Payment) *int { return &p.ID }),

		messages:   newTable(func(m *message.Message) *int { return &m.ID }),
		timetables: newTable(func(tt *timetable.Timetable) *int { return &tt.ID }),

		vehicles:    newTable(func(v *transport.Vehicle) *int { return &v.ID }),
		stops:       newTable(func(s *transport.Stop) *int { return &s.ID }),
		allocations: newTable(func(a *transport.Allocation) *int { return &a.ID }),
		journeys:    newTable(func(j *transport.Journey) *int { return &j.ID }),

		activities:   newTable(func(a *activity.Activity) *int { return &a.ID }),
		participants: newTable(func(p *activity.Participant) *int { return &p.ID }),

		posts: newTable(func(p *social.Post) *int { return &p.ID }),
	}
	return db, nil
}
