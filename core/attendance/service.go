package attendance

import (
	"github.com/pkg/errors"
)

type (
	Repository interface {
		// UpsertMarks replaces marks sharing a key with the given ones and appends the rest.
		UpsertMarks(marks ...Mark) error
		FilterMarks(filter QueryFilter) ([]Mark, error)
		DeleteMarksByStudent(studentID int) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record saves a register for every roster student; roster students without an entry are present.
// Entries for students outside the roster are ignored.
func (svc *Service) Record(reg Register, roster []int) ([]Mark, error) {
	statuses := make(map[int]Status, len(reg.Entries))
	for _, e := range reg.Entries {
		statuses[e.StudentID] = e.Status
	}

	marks := make([]Mark, 0, len(roster))
	for _, id := range roster {
		status, ok := statuses[id]
		if !ok {
			status = Present
		}
		marks = append(marks, Mark{
			Date:      reg.Date,
			Class:     reg.Class,
			Section:   reg.Section,
			StudentID: id,
			Status:    status,
		})
	}
	if err := svc.repo.UpsertMarks(marks...); err != nil {
		return nil, errors.Wrap(err, "upserting marks")
	}
	return marks, nil
}

// Sheet returns a class section's marks for date, defaulting unmarked roster students to present.
func (svc *Service) Sheet(date, class, section string, roster []int) ([]Mark, error) {
	stored, err := svc.repo.FilterMarks(QueryFilter{From: date, To: date, Class: class, Section: section})
	if err != nil {
		return nil, errors.Wrap(err, "filtering marks")
	}
	byStudent := make(map[int]Status, len(stored))
	for _, m := range stored {
		byStudent[m.StudentID] = m.Status
	}

	sheet := make([]Mark, 0, len(roster))
	for _, id := range roster {
		status, ok := byStudent[id]
		if !ok {
			status = Present
		}
		sheet = append(sheet, Mark{Date: date, Class: class, Section: section, StudentID: id, Status: status})
	}
	return sheet, nil
}

func (svc *Service) Query(filter QueryFilter) ([]Mark, error) {
	return svc.repo.FilterMarks(filter)
}

func (svc *Service) RemoveByStudent(studentID int) error {
	_, err := svc.repo.DeleteMarksByStudent(studentID)
	return err
}
