package attendance

import (
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

type Status string

const (
	Present Status = "present"
	Absent  Status = "absent"
)

// Mark is a student's attendance on a given day, keyed by (Date, Class, Section, StudentID).
type Mark struct {
	Date      string `json:"date"`
	Class     string `json:"class"`
	Section   string `json:"section"`
	StudentID int    `json:"student_id"`
	Status    Status `json:"status"`
}

// SameKey reports whether m and o mark the same student on the same day and class.
func (m Mark) SameKey(o Mark) bool {
	return m.Date == o.Date && m.Class == o.Class && m.Section == o.Section && m.StudentID == o.StudentID
}

type Entry struct {
	StudentID int    `json:"student_id" validate:"required,gt=0"`
	Status    Status `json:"status" validate:"required,oneof=present absent"`
}

// Register is a day's attendance for a class section.
// Students of the section missing from Entries are marked present.
type Register struct {
	Date    string  `json:"date" validate:"required,datetime=2006-01-02"`
	Class   string  `json:"class" validate:"required"`
	Section string  `json:"section" validate:"required"`
	Entries []Entry `json:"entries" validate:"dive"`
}

func (r *Register) Validate(validate *validator.Validate) error {
	r.Class = core.CleanString(r.Class)
	r.Section = strings.ToUpper(core.CleanString(r.Section))
	return validate.Struct(r)
}

// QueryFilter selects marks; Date bounds are inclusive and empty fields mean no restriction.
type QueryFilter struct {
	From      string `query:"from"`
	To        string `query:"to"`
	Class     string `query:"class"`
	Section   string `query:"section"`
	StudentID int    `query:"student"`
}

// Match reports whether m passes every set field of the filter.
// Dates use DateLayout so they compare lexically.
func (qf QueryFilter) Match(m Mark) bool {
	if qf.From != "" && m.Date < qf.From {
		return false
	}
	if qf.To != "" && m.Date > qf.To {
		return false
	}
	if qf.Class != "" && m.Class != qf.Class {
		return false
	}
	if qf.Section != "" && m.Section != qf.Section {
		return false
	}
	if qf.StudentID != 0 && m.StudentID != qf.StudentID {
		return false
	}
	return true
}

// Percentage returns present/(present+absent) as a rounded percentage, 0 when nothing was marked.
func Percentage(present, absent int) int {
	total := present + absent
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}
