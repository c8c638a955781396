package timetable

import (
	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("timetable")
)

type (
	Repository interface {
		// SaveTimetable replaces the timetable sharing (Class, Section, Day), or creates it.
		SaveTimetable(tt Timetable) (Timetable, error)
		FilterTimetables(filter QueryFilter) ([]Timetable, error)
		DeleteTimetable(id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Set stores a day's schedule, replacing any previous one for the same class section and day.
func (svc *Service) Set(nt NewTimetable) (Timetable, error) {
	return svc.repo.SaveTimetable(Timetable{
		Class:   nt.Class,
		Section: nt.Section,
		Day:     nt.Day,
		Periods: nt.Periods,
	})
}

func (svc *Service) List(filter QueryFilter) ([]Timetable, error) {
	return svc.repo.FilterTimetables(filter)
}

func (svc *Service) Find(class, section, day string) (Timetable, error) {
	tts, err := svc.repo.FilterTimetables(QueryFilter{Class: class, Section: section, Day: day})
	if err != nil {
		return Timetable{}, err
	}
	if len(tts) == 0 {
		return Timetable{}, ErrNotFound
	}
	return tts[0], nil
}

func (svc *Service) Remove(id int) error {
	return svc.repo.DeleteTimetable(id)
}
