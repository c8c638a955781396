package directory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/directory"
	"github.com/trezcool/shule/tests"
)

func TestService_AddStudentReusesMaxID(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	svc := app.Directory

	require.NoError(t, svc.RemoveStudent(8))
	s, err := svc.AddStudent(directory.NewStudent{Name: "Kavya Mohan", Class: "8", Section: "B"})
	require.NoError(t, err)
	assert.Equal(t, 8, s.ID)

	require.NoError(t, svc.RemoveStudent(3))
	s, err = svc.AddStudent(directory.NewStudent{Name: "Hari Prasad", Class: "9", Section: "B"})
	require.NoError(t, err)
	assert.Equal(t, 9, s.ID)

	assert.True(t, core.IsNotFound(svc.RemoveStudent(3)))
}

func TestService_StudentName(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)

	if got := app.Directory.StudentName(7); got != "Vikram Natarajan" {
		t.Errorf("StudentName(7) = %q; want %q", got, "Vikram Natarajan")
	}
	if got := app.Directory.StudentName(99); got != "Student 99" {
		t.Errorf("StudentName(99) = %q; want %q", got, "Student 99")
	}
}

func TestService_ListClasses(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)

	classes, err := app.Directory.ListClasses(directory.QueryFilter{Class: "10"})
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, 3, classes[0].TotalStudents, "10A")
	assert.Equal(t, 1, classes[1].TotalStudents, "10B")
}

func TestService_StudentIDs(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)

	ids, err := app.Directory.StudentIDs("10", "A")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 7}, ids)
}
