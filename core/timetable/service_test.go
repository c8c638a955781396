package timetable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/timetable"
	"github.com/trezcool/shule/tests"
)

func TestService_Find(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)

	tt, err := app.Timetables.Find("10", "A", "Tuesday")
	require.NoError(t, err)
	assert.Equal(t, 2, tt.ID)
	assert.Len(t, tt.Periods, 6)
	assert.Equal(t, "Science", tt.Periods[0].Subject)

	_, err = app.Timetables.Find("10", "A", "Saturday")
	assert.True(t, core.IsNotFound(err), "Find() error = %v; want not found", err)
}

func TestService_Set(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	periods := []timetable.Period{{Period: 1, Subject: "Tamil", Teacher: "Anand Kumar", Time: "8:00 - 8:45"}}

	// replaces the existing Monday schedule in place
	got, err := app.Timetables.Set(timetable.NewTimetable{Class: "10", Section: "A", Day: "Monday", Periods: periods})
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID)

	monday, err := app.Timetables.Find("10", "A", "Monday")
	require.NoError(t, err)
	assert.Equal(t, periods, monday.Periods)

	// a new day gets a fresh id
	got, err = app.Timetables.Set(timetable.NewTimetable{Class: "10", Section: "A", Day: "Wednesday", Periods: periods})
	require.NoError(t, err)
	assert.Equal(t, 3, got.ID)

	all, err := app.Timetables.List(timetable.QueryFilter{Class: "10", Section: "A"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, app.Timetables.Remove(3))
	assert.True(t, core.IsNotFound(app.Timetables.Remove(3)))
}

func TestNewTimetable_Validate(t *testing.T) {
	validate, _ := core.NewValidator()
	period := timetable.Period{Period: 1, Subject: "Maths"}

	tests := []struct {
		name    string
		tt      timetable.NewTimetable
		wantErr bool
	}{
		{name: "valid", tt: timetable.NewTimetable{Class: "10", Section: "a", Day: "Monday", Periods: []timetable.Period{period}}},
		{name: "sunday", tt: timetable.NewTimetable{Class: "10", Section: "A", Day: "Sunday", Periods: []timetable.Period{period}}, wantErr: true},
		{name: "no periods", tt: timetable.NewTimetable{Class: "10", Section: "A", Day: "Monday"}, wantErr: true},
		{name: "blank subject", tt: timetable.NewTimetable{Class: "10", Section: "A", Day: "Monday", Periods: []timetable.Period{{Period: 1, Subject: "  "}}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tt.Validate(validate)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}
