package dummydb

import (
	"github.com/trezcool/shule/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) UpsertMarks(marks ...attendance.Mark) error {
	for _, m := range marks {
		repo.db.marks.upsert(m, attendance.Mark.SameKey)
	}
	return nil
}

func (repo *attendanceRepository) FilterMarks(filter attendance.QueryFilter) ([]attendance.Mark, error) {
	return repo.db.marks.filter(filter.Match), nil
}

func (repo *attendanceRepository) DeleteMarksByStudent(studentID int) (int, error) {
	return repo.db.marks.deleteWhere(func(m attendance.Mark) bool { return m.StudentID == studentID }), nil
}
