package exam

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("exam")
)

type (
	Repository interface {
		CreateExam(e Exam) (Exam, error)
		GetExamByID(id int) (Exam, error)
		FilterExams(filter QueryFilter) ([]Exam, error)
		DeleteExam(id int) error

		// UpsertResults replaces results sharing (ExamID, StudentID) and appends the rest.
		UpsertResults(results ...Result) error
		// FilterResults returns results of examID and/or studentID; zero values match any.
		FilterResults(examID, studentID int) ([]Result, error)
		DeleteResultsByExam(examID int) (int, error)
		DeleteResultsByStudent(studentID int) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Add(ne NewExam) (Exam, error) {
	total := ne.TotalMarks
	if total == 0 {
		total = DefaultTotalMarks
	}
	return svc.repo.CreateExam(Exam{
		Name:       ne.Name,
		Class:      ne.Class,
		Subject:    ne.Subject,
		Date:       ne.Date,
		Duration:   ne.Duration,
		TotalMarks: total,
	})
}

func (svc *Service) Get(id int) (Exam, error) {
	return svc.repo.GetExamByID(id)
}

func (svc *Service) List(filter QueryFilter) ([]Exam, error) {
	return svc.repo.FilterExams(filter)
}

// Remove deletes the exam and its results.
func (svc *Service) Remove(id int) error {
	if err := svc.repo.DeleteExam(id); err != nil {
		return err
	}
	if _, err := svc.repo.DeleteResultsByExam(id); err != nil {
		return errors.Wrap(err, "deleting exam results")
	}
	return nil
}

// RecordResults grades and saves results for an exam. Marks above the exam's total are rejected.
func (svc *Service) RecordResults(examID int, entries []ResultEntry) ([]Result, error) {
	ex, err := svc.repo.GetExamByID(examID)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		if e.Marks < 0 || e.Marks > ex.TotalMarks {
			msg := fmt.Sprintf("marks must be between 0 and %g", ex.TotalMarks)
			return nil, core.NewFieldError("marks", msg)
		}
		results = append(results, Result{
			ExamID:    examID,
			StudentID: e.StudentID,
			Marks:     e.Marks,
			Grade:     Grade(e.Marks, ex.TotalMarks),
		})
	}
	if err := svc.repo.UpsertResults(results...); err != nil {
		return nil, errors.Wrap(err, "upserting results")
	}
	return results, nil
}

func (svc *Service) Results(examID, studentID int) ([]Result, error) {
	return svc.repo.FilterResults(examID, studentID)
}

func (svc *Service) RemoveResultsByStudent(studentID int) error {
	_, err := svc.repo.DeleteResultsByStudent(studentID)
	return err
}
