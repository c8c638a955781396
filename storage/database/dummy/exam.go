package dummydb

import (
	"github.com/trezcool/shule/core/exam"
)

type examRepository struct {
	db *DB
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *DB) exam.Repository {
	return &examRepository{db: db}
}

func (repo *examRepository) CreateExam(e exam.Exam) (exam.Exam, error) {
	return repo.db.exams.insert(e), nil
}

func (repo *examRepository) GetExamByID(id int) (exam.Exam, error) {
	if e, ok := repo.db.exams.get(id); ok {
		return e, nil
	}
	return exam.Exam{}, exam.ErrNotFound
}

func (repo *examRepository) FilterExams(filter exam.QueryFilter) ([]exam.Exam, error) {
	return repo.db.exams.filter(filter.Match), nil
}

func (repo *examRepository) DeleteExam(id int) error {
	if !repo.db.exams.delete(id) {
		return exam.ErrNotFound
	}
	return nil
}

func (repo *examRepository) UpsertResults(results ...exam.Result) error {
	for _, r := range results {
		repo.db.results.upsert(r, sameResult)
	}
	return nil
}

func (repo *examRepository) FilterResults(examID, studentID int) ([]exam.Result, error) {
	return repo.db.results.filter(func(r exam.Result) bool {
		return (examID == 0 || r.ExamID == examID) && (studentID == 0 || r.StudentID == studentID)
	}), nil
}

func (repo *examRepository) DeleteResultsByExam(examID int) (int, error) {
	return repo.db.results.deleteWhere(func(r exam.Result) bool { return r.ExamID == examID }), nil
}

func (repo *examRepository) DeleteResultsByStudent(studentID int) (int, error) {
	return repo.db.results.deleteWhere(func(r exam.Result) bool { return r.StudentID == studentID }), nil
}

func sameResult(a, b exam.Result) bool {
	return a.ExamID == b.ExamID && a.StudentID == b.StudentID
}
