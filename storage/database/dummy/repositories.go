package dummydb

import "github.com/trezcool/shule/core/school"

// NewRepositories binds every repository of the app to db.
func NewRepositories(db *DB) school.Repositories {
	return school.Repositories{
		Directory:  NewDirectoryRepository(db),
		Attendance: NewAttendanceRepository(db),
		Exams:      NewExamRepository(db),
		Fees:       NewFeeRepository(db),
		Messages:   NewMessageRepository(db),
		Timetables: NewTimetableRepository(db),
		Transport:  NewTransportRepository(db),
		Activities: NewActivityRepository(db),
		Social:     NewSocialRepository(db),
	}
}
