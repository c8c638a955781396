package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/directory"
	"github.com/trezcool/shule/core/exam"
	"github.com/trezcool/shule/core/fee"
)

type Kind string

const (
	Attendance Kind = "attendance"
	Academic   Kind = "academic"
	Fee        Kind = "fee"
)

var (
	Kinds = []Kind{Attendance, Academic, Fee}

	titles = map[Kind]string{
		Attendance: "Attendance Report",
		Academic:   "Academic Performance Report",
		Fee:        "Fee Collection Report",
	}
)

func ParseKind(s string) (Kind, error) {
	k := Kind(core.CleanString(s, true /* lower */))
	if _, ok := titles[k]; !ok {
		return "", core.NewFieldError("kind", "kind must be one of attendance, academic or fee")
	}
	return k, nil
}

// Filters restrict a report; zero values mean no restriction.
type Filters struct {
	Class     string `query:"class" json:"class,omitempty"`
	Section   string `query:"section" json:"section,omitempty"`
	StudentID int    `query:"student" json:"student_id,omitempty"`
}

// Clean trims the filters and upper-cases Section the way sections are stored.
func (f Filters) Clean() Filters {
	f.Class = core.CleanString(f.Class)
	f.Section = strings.ToUpper(core.CleanString(f.Section))
	return f
}

// DateRange is inclusive; both ends are YYYY-MM-DD.
type DateRange struct {
	Start string `query:"start" json:"start"`
	End   string `query:"end" json:"end"`
}

func (dr DateRange) String() string {
	return dr.Start + " to " + dr.End
}

func (dr DateRange) validate() error {
	start, err := time.Parse(core.DateLayout, dr.Start)
	if err != nil {
		return core.NewFieldError("start", "start must be a date formatted as YYYY-MM-DD")
	}
	end, err := time.Parse(core.DateLayout, dr.End)
	if err != nil {
		return core.NewFieldError("end", "end must be a date formatted as YYYY-MM-DD")
	}
	if start.After(end) {
		return core.NewFieldError("start", "start must not be after end")
	}
	return nil
}

type Report struct {
	Type      Kind             `json:"type"`
	Title     string           `json:"title"`
	DateRange string           `json:"date_range"`
	Students  []StudentSummary `json:"students"`
	Summary   *FeeSummary      `json:"summary,omitempty"`
}

// StudentSummary is one student's line in a report:
// an AttendanceSummary, AcademicSummary or FeeStatement.
type StudentSummary interface {
	rows() [][]interface{}
}

type AttendanceSummary struct {
	StudentID         int    `json:"student_id"`
	StudentName       string `json:"student_name"`
	Present           int    `json:"present"`
	Absent            int    `json:"absent"`
	Total             int    `json:"total"`
	PresentPercentage int    `json:"present_percentage"`
}

type SubjectScore struct {
	Exam    string  `json:"exam"`
	Subject string  `json:"subject"`
	Marks   float64 `json:"marks"` // percentage of the exam's total
	Grade   string  `json:"grade"`
}

type AcademicSummary struct {
	StudentID   int            `json:"student_id"`
	StudentName string         `json:"student_name"`
	Subjects    []SubjectScore `json:"subjects"`
	Average     int            `json:"average"`
	Rank        int            `json:"rank"`
}

type FeeLine struct {
	FeeType    string     `json:"fee_type"`
	Amount     float64    `json:"amount"`
	Status     fee.Status `json:"status"`
	PaidAmount float64    `json:"paid_amount"`
}

type FeeStatement struct {
	StudentID   int       `json:"student_id"`
	StudentName string    `json:"student_name"`
	Fees        []FeeLine `json:"fees"`
}

type FeeSummary struct {
	TotalStudents int      `json:"total_students"`
	FeeTypes      []string `json:"fee_types"`
	Collected     int      `json:"collected"` // % of dues paid
	Pending       int      `json:"pending"`
}

// Aggregator builds reports from the record services. It never mutates them.
type Aggregator struct {
	directory  *directory.Service
	attendance *attendance.Service
	exams      *exam.Service
	fees       *fee.Service
}

func NewAggregator(dir *directory.Service, att *attendance.Service, exams *exam.Service, fees *fee.Service) *Aggregator {
	return &Aggregator{directory: dir, attendance: att, exams: exams, fees: fees}
}

// Generate builds a report of kind over dr. No matching student yields an empty Students list.
func (agg *Aggregator) Generate(kind Kind, filters Filters, dr DateRange) (Report, error) {
	if _, ok := titles[kind]; !ok {
		return Report{}, core.NewFieldError("kind", "kind must be one of attendance, academic or fee")
	}
	if err := dr.validate(); err != nil {
		return Report{}, err
	}
	filters = filters.Clean()

	rep := Report{
		Type:      kind,
		Title:     titles[kind],
		DateRange: dr.String(),
		Students:  []StudentSummary{},
	}
	var err error
	switch kind {
	case Attendance:
		err = agg.attendanceReport(&rep, filters, dr)
	case Academic:
		err = agg.academicReport(&rep, filters, dr)
	case Fee:
		err = agg.feeReport(&rep, filters, dr)
	}
	if err != nil {
		return Report{}, errors.Wrapf(err, "generating %s report", kind)
	}
	return rep, nil
}

func (agg *Aggregator) attendanceReport(rep *Report, filters Filters, dr DateRange) error {
	marks, err := agg.attendance.Query(attendance.QueryFilter{
		From:      dr.Start,
		To:        dr.End,
		Class:     filters.Class,
		Section:   filters.Section,
		StudentID: filters.StudentID,
	})
	if err != nil {
		return errors.Wrap(err, "querying marks")
	}

	var order []int
	groups := make(map[int]*AttendanceSummary)
	for _, m := range marks {
		g, ok := groups[m.StudentID]
		if !ok {
			g = &AttendanceSummary{StudentID: m.StudentID, StudentName: agg.directory.StudentName(m.StudentID)}
			groups[m.StudentID] = g
			order = append(order, m.StudentID)
		}
		if m.Status == attendance.Present {
			g.Present++
		} else {
			g.Absent++
		}
		g.Total++
	}

	for _, id := range order {
		g := groups[id]
		g.PresentPercentage = attendance.Percentage(g.Present, g.Absent)
		rep.Students = append(rep.Students, *g)
	}
	return nil
}

func (agg *Aggregator) academicReport(rep *Report, filters Filters, dr DateRange) error {
	students, err := agg.students(filters)
	if err != nil {
		return err
	}

	summaries := make([]AcademicSummary, 0, len(students))
	for _, s := range students {
		exams, err := agg.exams.List(exam.QueryFilter{Class: s.Class, From: dr.Start, To: dr.End})
		if err != nil {
			return errors.Wrap(err, "listing exams")
		}
		sum := AcademicSummary{StudentID: s.ID, StudentName: s.Name, Subjects: []SubjectScore{}}
		var total float64
		for _, ex := range exams {
			results, err := agg.exams.Results(ex.ID, s.ID)
			if err != nil {
				return errors.Wrap(err, "listing results")
			}
			for _, r := range results {
				pct := exam.Percentage(r.Marks, ex.TotalMarks)
				sum.Subjects = append(sum.Subjects, SubjectScore{
					Exam:    ex.Name,
					Subject: ex.Subject,
					Marks:   math.Round(pct*10) / 10,
					Grade:   r.Grade,
				})
				total += pct
			}
		}
		if n := len(sum.Subjects); n > 0 {
			sum.Average = int(math.Round(total / float64(n)))
		}
		summaries = append(summaries, sum)
	}

	rank(summaries)
	for _, sum := range summaries {
		rep.Students = append(rep.Students, sum)
	}
	return nil
}

func (agg *Aggregator) feeReport(rep *Report, filters Filters, dr DateRange) error {
	students, err := agg.students(filters)
	if err != nil {
		return err
	}

	summary := FeeSummary{TotalStudents: len(students), FeeTypes: []string{}}
	seen := make(map[string]bool)
	var due, paid float64
	for _, s := range students {
		payments, err := agg.fees.StudentFees(s, fee.QueryFilter{DueFrom: dr.Start, DueTo: dr.End})
		if err != nil {
			return errors.Wrap(err, "listing student fees")
		}
		stmt := FeeStatement{StudentID: s.ID, StudentName: s.Name, Fees: []FeeLine{}}
		for _, p := range payments {
			stmt.Fees = append(stmt.Fees, FeeLine{
				FeeType:    p.FeeType,
				Amount:     p.Amount,
				Status:     p.Status,
				PaidAmount: p.PaidAmount,
			})
			if !seen[p.FeeType] {
				seen[p.FeeType] = true
				summary.FeeTypes = append(summary.FeeTypes, p.FeeType)
			}
			due += p.Amount
			paid += math.Min(p.PaidAmount, p.Amount)
		}
		rep.Students = append(rep.Students, stmt)
	}

	if due > 0 {
		summary.Collected = int(math.Round(paid / due * 100))
		summary.Pending = 100 - summary.Collected
	}
	rep.Summary = &summary
	return nil
}

// students resolves the report's population: one student, or a class (optionally one section of it).
func (agg *Aggregator) students(filters Filters) ([]directory.Student, error) {
	if filters.StudentID > 0 {
		s, err := agg.directory.GetStudent(filters.StudentID)
		switch {
		case err == nil:
			return []directory.Student{s}, nil
		case core.IsNotFound(err):
			return nil, nil
		default:
			return nil, errors.Wrap(err, "getting student")
		}
	}
	if filters.Class == "" {
		return nil, nil
	}
	students, err := agg.directory.ListStudents(directory.QueryFilter{Class: filters.Class, Section: filters.Section})
	return students, errors.Wrap(err, "listing students")
}

// rank assigns 1-based ranks by average, highest first. Equal averages share a rank.
func rank(summaries []AcademicSummary) {
	order := make([]int, len(summaries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return summaries[order[a]].Average > summaries[order[b]].Average
	})
	for pos, i := range order {
		if pos > 0 && summaries[i].Average == summaries[order[pos-1]].Average {
			summaries[i].Rank = summaries[order[pos-1]].Rank
			continue
		}
		summaries[i].Rank = pos + 1
	}
}
