package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/shule/core/attendance"
	"github.com/trezcool/shule/core/report"
	"github.com/trezcool/shule/tests"
)

var april = report.DateRange{Start: "2025-04-01", End: "2025-04-30"}

func TestAggregator_attendance(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)

	rep, err := app.Reports.Generate(report.Attendance, report.Filters{Class: "10", Section: "A"}, april)
	require.NoError(t, err)

	assert.Equal(t, "Attendance Report", rep.Title)
	assert.Equal(t, "2025-04-01 to 2025-04-30", rep.DateRange)
	assert.Nil(t, rep.Summary)

	want := []report.StudentSummary{
		report.AttendanceSummary{StudentID: 1, StudentName: "Arjun Raman", Present: 2, Absent: 1, Total: 3, PresentPercentage: 67},
		report.AttendanceSummary{StudentID: 2, StudentName: "Priya Venkatesh", Present: 3, Absent: 0, Total: 3, PresentPercentage: 100},
		report.AttendanceSummary{StudentID: 7, StudentName: "Vikram Natarajan", Present: 2, Absent: 1, Total: 3, PresentPercentage: 67},
	}
	assert.Equal(t, want, rep.Students)
}

func TestAggregator_filtersAreCleaned(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)

	for _, kind := range []report.Kind{report.Attendance, report.Academic, report.Fee} {
		want, err := app.Reports.Generate(kind, report.Filters{Class: "10", Section: "A"}, april)
		require.NoError(t, err)
		require.NotEmpty(t, want.Students, kind)

		got, err := app.Reports.Generate(kind, report.Filters{Class: " 10 ", Section: "a "}, april)
		require.NoError(t, err)
		assert.Equal(t, want, got, kind)
	}
}

func TestAggregator_attendanceIsIdempotent(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	filters := report.Filters{StudentID: 7}

	first, err := app.Reports.Generate(report.Attendance, filters, april)
	require.NoError(t, err)
	second, err := app.Reports.Generate(report.Attendance, filters, april)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// re-recording the same day does not double count
	reg := attendance.Register{Date: "2025-04-16", Class: "10", Section: "A",
		Entries: []attendance.Entry{{StudentID: 7, Status: attendance.Absent}}}
	_, err = app.TakeAttendance(reg)
	require.NoError(t, err)

	third, err := app.Reports.Generate(report.Attendance, filters, april)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestAggregator_academic(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)

	rep, err := app.Reports.Generate(report.Academic, report.Filters{Class: "10", Section: "A"}, april)
	require.NoError(t, err)
	require.Len(t, rep.Students, 3)

	tests := []struct {
		id, average, rank int
	}{
		{1, 87, 1},
		{2, 83, 2},
		{7, 75, 3},
	}
	for i, tt := range tests {
		sum, ok := rep.Students[i].(report.AcademicSummary)
		require.True(t, ok, "Students[%d] = %T", i, rep.Students[i])
		if sum.StudentID != tt.id || sum.Average != tt.average || sum.Rank != tt.rank {
			t.Errorf("Students[%d] = {id %d, avg %d, rank %d}; want {id %d, avg %d, rank %d}",
				i, sum.StudentID, sum.Average, sum.Rank, tt.id, tt.average, tt.rank)
		}
		assert.Len(t, sum.Subjects, 2, "May exams are out of range")
	}
}

func TestAggregator_fee(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)

	rep, err := app.Reports.Generate(report.Fee, report.Filters{Class: "10", Section: "A"}, april)
	require.NoError(t, err)
	require.NotNil(t, rep.Summary)

	assert.Equal(t, report.FeeSummary{
		TotalStudents: 3,
		FeeTypes:      []string{"Tuition Fee", "Transport Fee"},
		Collected:     47,
		Pending:       53,
	}, *rep.Summary)

	stmt, ok := rep.Students[1].(report.FeeStatement)
	require.True(t, ok)
	assert.Equal(t, 2, stmt.StudentID)
	require.Len(t, stmt.Fees, 2)
	assert.Equal(t, 12500.0, stmt.Fees[0].PaidAmount)
	assert.EqualValues(t, "partial", stmt.Fees[0].Status)
	assert.EqualValues(t, "unpaid", stmt.Fees[1].Status)
}

func TestAggregator_noStudents(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)

	for _, kind := range report.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			rep, err := app.Reports.Generate(kind, report.Filters{StudentID: 99}, april)
			require.NoError(t, err)
			assert.Empty(t, rep.Students)
			assert.NotNil(t, rep.Students)
		})
	}
}

func TestAggregator_invalidRange(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)

	_, err := app.Reports.Generate(report.Attendance, report.Filters{}, report.DateRange{Start: "2025-05-01", End: "2025-04-01"})
	assert.Error(t, err)
	_, err = app.Reports.Generate(report.Kind("payroll"), report.Filters{}, april)
	assert.Error(t, err)
}

func TestWriteXLSX(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	rep, err := app.Reports.Generate(report.Fee, report.Filters{Class: "10"}, april)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(rep, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	require.Len(t, sheets, 1)
	title, err := f.GetCellValue(sheets[0], "A1")
	require.NoError(t, err)
	assert.Equal(t, "Fee Collection Report", title)
}
