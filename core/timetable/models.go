package timetable

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

type Period struct {
	Period  int    `json:"period" validate:"required,gt=0"`
	Subject string `json:"subject" validate:"required"`
	Teacher string `json:"teacher"`
	Time    string `json:"time"` // e.g. "08:00 - 08:45"
}

// Timetable is a class section's schedule for one weekday.
type Timetable struct {
	ID      int      `json:"id"`
	Class   string   `json:"class"`
	Section string   `json:"section"`
	Day     string   `json:"day"`
	Periods []Period `json:"periods"`
}

func (tt Timetable) SameKey(o Timetable) bool {
	return tt.Class == o.Class && tt.Section == o.Section && tt.Day == o.Day
}

type NewTimetable struct {
	Class   string   `json:"class" validate:"required"`
	Section string   `json:"section" validate:"required"`
	Day     string   `json:"day" validate:"required,weekday"`
	Periods []Period `json:"periods" validate:"required,min=1,dive"`
}

func (nt *NewTimetable) Validate(validate *validator.Validate) error {
	nt.Class = core.CleanString(nt.Class)
	nt.Section = strings.ToUpper(core.CleanString(nt.Section))
	nt.Day = core.CleanString(nt.Day)
	for i := range nt.Periods {
		nt.Periods[i].Subject = core.CleanString(nt.Periods[i].Subject)
		nt.Periods[i].Teacher = core.CleanString(nt.Periods[i].Teacher)
	}
	return validate.Struct(nt)
}

type QueryFilter struct {
	Class   string `query:"class"`
	Section string `query:"section"`
	Day     string `query:"day"`
}

func (qf QueryFilter) Match(tt Timetable) bool {
	if qf.Class != "" && tt.Class != qf.Class {
		return false
	}
	if qf.Section != "" && tt.Section != qf.Section {
		return false
	}
	if qf.Day != "" && tt.Day != qf.Day {
		return false
	}
	return true
}
