package report

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var headers = map[Kind][]interface{}{
	Attendance: {"Student ID", "Student Name", "Present", "Absent", "Total", "Present %"},
	Academic:   {"Student ID", "Student Name", "Exam", "Subject", "Marks %", "Grade", "Average", "Rank"},
	Fee:        {"Student ID", "Student Name", "Fee Type", "Amount", "Paid", "Status"},
}

func (s AttendanceSummary) rows() [][]interface{} {
	return [][]interface{}{{s.StudentID, s.StudentName, s.Present, s.Absent, s.Total, s.PresentPercentage}}
}

// one row per subject; a student without results still gets a row
func (s AcademicSummary) rows() [][]interface{} {
	if len(s.Subjects) == 0 {
		return [][]interface{}{{s.StudentID, s.StudentName, "", "", "", "", s.Average, s.Rank}}
	}
	rows := make([][]interface{}, 0, len(s.Subjects))
	for _, sub := range s.Subjects {
		rows = append(rows, []interface{}{s.StudentID, s.StudentName, sub.Exam, sub.Subject, sub.Marks, sub.Grade, s.Average, s.Rank})
	}
	return rows
}

func (s FeeStatement) rows() [][]interface{} {
	if len(s.Fees) == 0 {
		return [][]interface{}{{s.StudentID, s.StudentName}}
	}
	rows := make([][]interface{}, 0, len(s.Fees))
	for _, f := range s.Fees {
		rows = append(rows, []interface{}{s.StudentID, s.StudentName, f.FeeType, f.Amount, f.PaidAmount, string(f.Status)})
	}
	return rows
}

// WriteXLSX writes rep as a single-sheet workbook to w.
func WriteXLSX(rep Report, w io.Writer) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "closing workbook")
		}
	}()

	sheet := rep.Title
	if sheet == "" {
		sheet = string(rep.Type)
	}
	if len(sheet) > 31 { // excel's sheet name limit
		sheet = sheet[:31]
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}

	rows := [][]interface{}{
		{rep.Title},
		{"Date Range", rep.DateRange},
		{},
		headers[rep.Type],
	}
	headerRow := len(rows)
	for _, s := range rep.Students {
		rows = append(rows, s.rows()...)
	}
	if rep.Summary != nil {
		rows = append(rows,
			[]interface{}{},
			[]interface{}{"Total Students", rep.Summary.TotalStudents},
			[]interface{}{"Collection Rate %", rep.Summary.Collected},
			[]interface{}{"Pending Rate %", rep.Summary.Pending},
		)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "resolving cell")
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return errors.Wrapf(err, "writing row %d", i+1)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating style")
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return errors.Wrap(err, "styling title")
	}
	if err := f.SetRowStyle(sheet, headerRow, headerRow, bold); err != nil {
		return errors.Wrap(err, "styling header")
	}

	return errors.Wrap(f.Write(w), "writing workbook")
}
