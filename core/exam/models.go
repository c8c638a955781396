package exam

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

const DefaultTotalMarks = 100

type Exam struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Class      string  `json:"class"`
	Subject    string  `json:"subject"`
	Date       string  `json:"date"`
	Duration   int     `json:"duration"` // minutes
	TotalMarks float64 `json:"total_marks"`
}

// Result is a student's score in an exam, keyed by (ExamID, StudentID).
type Result struct {
	ExamID    int     `json:"exam_id"`
	StudentID int     `json:"student_id"`
	Marks     float64 `json:"marks"`
	Grade     string  `json:"grade"` // derived from Marks and Exam.TotalMarks
}

type NewExam struct {
	Name       string  `json:"name" validate:"required"`
	Class      string  `json:"class" validate:"required"`
	Subject    string  `json:"subject" validate:"required"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	Duration   int     `json:"duration" validate:"gte=0"`
	TotalMarks float64 `json:"total_marks" validate:"gte=0"`
}

func (ne *NewExam) Validate(validate *validator.Validate) error {
	ne.Name = core.CleanString(ne.Name)
	ne.Class = core.CleanString(ne.Class)
	ne.Subject = core.CleanString(ne.Subject)
	if ne.TotalMarks == 0 {
		ne.TotalMarks = DefaultTotalMarks
	}
	return validate.Struct(ne)
}

type ResultEntry struct {
	StudentID int     `json:"student_id" validate:"required,gt=0"`
	Marks     float64 `json:"marks" validate:"gte=0"`
}

type NewResults struct {
	Results []ResultEntry `json:"results" validate:"required,dive"`
}

func (nr *NewResults) Validate(validate *validator.Validate) error {
	return validate.Struct(nr)
}

type QueryFilter struct {
	Class   string `query:"class"`
	Subject string `query:"subject"`
	From    string `query:"from"`
	To      string `query:"to"`
}

func (qf QueryFilter) Match(e Exam) bool {
	if qf.Class != "" && e.Class != qf.Class {
		return false
	}
	if qf.Subject != "" && e.Subject != qf.Subject {
		return false
	}
	if qf.From != "" && e.Date < qf.From {
		return false
	}
	if qf.To != "" && e.Date > qf.To {
		return false
	}
	return true
}

// Grade bands, highest first. Each band includes its lower bound.
var gradeBands = []struct {
	min   float64
	grade string
}{
	{90, "A+"},
	{80, "A"},
	{70, "B+"},
	{60, "B"},
	{50, "C"},
	{40, "D"},
}

// Grade maps marks out of total to a letter grade. Totals <= 0 yield F.
func Grade(marks, total float64) string {
	if total <= 0 {
		return "F"
	}
	pct := Percentage(marks, total)
	for _, b := range gradeBands {
		if pct >= b.min {
			return b.grade
		}
	}
	return "F"
}

// Percentage is marks as a percentage of total, unrounded.
func Percentage(marks, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return marks * 100 / total
}
