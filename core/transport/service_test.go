package transport_test

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/transport"
	"github.com/trezcool/shule/tests"
)

func TestService_journeys(t *testing.T) {
	ctx := context.Background()
	app, events := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	svc := app.Transport

	t.Run("vehicle under maintenance", func(t *testing.T) {
		_, err := svc.StartJourney(ctx, transport.NewJourney{VehicleID: 3, StartTime: "07:00"})
		assert.IsType(t, &core.ValidationError{}, errors.Cause(err))
	})
	t.Run("journey already in progress", func(t *testing.T) {
		_, err := svc.StartJourney(ctx, transport.NewJourney{VehicleID: 4, StartTime: "07:00"})
		assert.IsType(t, &core.ValidationError{}, errors.Cause(err))
	})
	t.Run("unknown vehicle", func(t *testing.T) {
		_, err := svc.StartJourney(ctx, transport.NewJourney{VehicleID: 42, StartTime: "07:00"})
		assert.True(t, core.IsNotFound(err), "StartJourney() error = %v; want not found", err)
	})

	j, err := svc.StartJourney(ctx, transport.NewJourney{VehicleID: 1, StartTime: "23:30", StartOdometer: 12494, Notes: "Late run"})
	require.NoError(t, err)
	assert.Equal(t, transport.InProgress, j.Status)
	assert.Equal(t, time.Now().Format(core.DateLayout), j.Date)

	_, err = svc.EndJourney(ctx, j.ID, transport.JourneyEnd{EndTime: "00:15", EndOdometer: 12000})
	assert.IsType(t, &core.ValidationError{}, errors.Cause(err), "end odometer below start")

	j, err = svc.EndJourney(ctx, j.ID, transport.JourneyEnd{EndTime: "00:15", EndOdometer: 12512, Notes: "Gate closed"})
	require.NoError(t, err)
	assert.Equal(t, transport.Completed, j.Status)
	assert.Equal(t, "Late run; Gate closed", j.Notes)
	assert.Equal(t, 18, transport.Distance(j))

	_, err = svc.EndJourney(ctx, j.ID, transport.JourneyEnd{EndTime: "01:00", EndOdometer: 12600})
	assert.IsType(t, &core.ValidationError{}, errors.Cause(err), "ending twice")

	assert.Equal(t, []string{core.EventJourneyStarted, core.EventJourneyEnded}, events.Types())

	logs, err := svc.JourneyLogs(transport.JourneyFilter{VehicleID: 1})
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, j.ID, logs[0].ID, "today's journey comes first")
	assert.Equal(t, "0h 45m", logs[0].Duration)
	assert.Equal(t, "18 km", logs[0].Distance)
	assert.Equal(t, "TN01AB1234", logs[0].Vehicle)
}

func TestService_JourneyLogs(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)

	logs, err := app.Transport.JourneyLogs(transport.JourneyFilter{})
	require.NoError(t, err)

	var ids []int
	for _, l := range logs {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []int{4, 3, 1, 2}, ids)
	assert.Equal(t, "-", logs[0].Duration)
	assert.Equal(t, "-", logs[0].Distance)
	assert.Equal(t, "1h 30m", logs[1].Duration)
	assert.Equal(t, "25 km", logs[1].Distance)
}

func TestService_publishFailureIsNotFatal(t *testing.T) {
	app, events := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	events.Err = errors.New("broker down")

	_, err := app.Transport.StartJourney(context.Background(), transport.NewJourney{VehicleID: 2, StartTime: "15:00"})
	assert.NoError(t, err)
}

func TestService_Allocate(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)

	_, err := app.AllocateTransport(transport.NewAllocation{StudentID: 7, VehicleID: 1, StopID: 6, FeeStatus: transport.FeePending})
	assert.IsType(t, &core.ValidationError{}, errors.Cause(err), "stop 6 is on route 2")

	_, err = app.AllocateTransport(transport.NewAllocation{StudentID: 99, VehicleID: 1, StopID: 1})
	assert.True(t, core.IsNotFound(err), "unknown student")

	a, err := app.AllocateTransport(transport.NewAllocation{StudentID: 7, VehicleID: 1, StopID: 1, FeeStatus: transport.FeePending})
	require.NoError(t, err)
	assert.Equal(t, 5, a.ID)
}

func TestService_cascades(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	svc := app.Transport

	require.NoError(t, svc.RemoveStop(3))
	allocs, err := svc.ListAllocations(transport.AllocationFilter{StopID: 3})
	require.NoError(t, err)
	assert.Empty(t, allocs, "allocations of a removed stop")

	require.NoError(t, svc.RemoveVehicle(1))
	allocs, err = svc.ListAllocations(transport.AllocationFilter{VehicleID: 1})
	require.NoError(t, err)
	assert.Empty(t, allocs)
	logs, err := svc.JourneyLogs(transport.JourneyFilter{VehicleID: 1})
	require.NoError(t, err)
	assert.Empty(t, logs)

	all, err := svc.ListAllocations(transport.AllocationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	err = svc.RemoveVehicle(1)
	assert.True(t, core.IsNotFound(err), "RemoveVehicle() twice error = %v", err)
}

func TestService_RemoveVehicleDropsRouteStops(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	svc := app.Transport

	stops, err := svc.ListStops(4)
	require.NoError(t, err)
	require.NotEmpty(t, stops)

	require.NoError(t, svc.RemoveVehicle(4))
	stops, err = svc.ListStops(4)
	require.NoError(t, err)
	assert.Empty(t, stops)

	// the next vehicle reuses id 4 and must start without a route
	v, err := svc.AddVehicle(transport.NewVehicle{RegistrationNumber: "TN01ZZ0001", Type: "Van", Capacity: 12, Status: transport.Active})
	require.NoError(t, err)
	require.Equal(t, 4, v.ID)
	stops, err = svc.ListStops(v.ID)
	require.NoError(t, err)
	assert.Empty(t, stops)

	others, err := svc.ListStops(1)
	require.NoError(t, err)
	assert.NotEmpty(t, others, "other routes keep their stops")
}

func TestService_concurrentJourneys(t *testing.T) {
	ctx := context.Background()
	app, events := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	svc := app.Transport
	const workers = 10

	// run calls fn from workers goroutines at once and returns the results of those that succeeded.
	run := func(fn func() (transport.Journey, error)) []transport.Journey {
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			start   = make(chan struct{})
			results []transport.Journey
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				if j, err := fn(); err == nil {
					mu.Lock()
					results = append(results, j)
					mu.Unlock()
				}
			}()
		}
		close(start)
		wg.Wait()
		return results
	}

	started := run(func() (transport.Journey, error) {
		return svc.StartJourney(ctx, transport.NewJourney{VehicleID: 2, StartTime: "15:00", StartOdometer: 100, Notes: "Pickup"})
	})
	require.Len(t, started, 1, "only one journey may be in progress per vehicle")

	open, err := svc.JourneyLogs(transport.JourneyFilter{VehicleID: 2, Status: transport.InProgress})
	require.NoError(t, err)
	assert.Len(t, open, 1)

	id := started[0].ID
	ended := run(func() (transport.Journey, error) {
		return svc.EndJourney(ctx, id, transport.JourneyEnd{EndTime: "16:00", EndOdometer: 120, Notes: "Done"})
	})
	require.Len(t, ended, 1, "a journey ends once")
	assert.Equal(t, "Pickup; Done", ended[0].Notes)

	assert.Equal(t, []string{core.EventJourneyStarted, core.EventJourneyEnded}, events.Types())
}

func TestService_Tracking(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)

	tracked, err := app.Transport.Tracking("tn01gh")
	require.NoError(t, err)
	require.Len(t, tracked, 1)
	assert.Equal(t, 4, tracked[0].ID)
	require.NotNil(t, tracked[0].ActiveJourney)
	assert.Equal(t, 4, tracked[0].ActiveJourney.ID)
	assert.Equal(t, "just now", tracked[0].UpdatedAgo)
}

func TestTracker_Tick(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	before := make(map[int]transport.Vehicle)
	vehicles, err := app.Transport.FilterVehicles("")
	require.NoError(t, err)
	for _, v := range vehicles {
		before[v.ID] = v
	}

	now := time.Now().Add(time.Minute)
	moved, err := app.Tracker.Tick(now)
	require.NoError(t, err)
	assert.Equal(t, 3, moved, "the van under maintenance stays put")

	jitter := core.NewTestConfig().Tracker.Jitter
	vehicles, err = app.Transport.FilterVehicles("")
	require.NoError(t, err)
	for _, v := range vehicles {
		prev := before[v.ID]
		if v.Status != transport.Active {
			assert.Equal(t, prev.CurrentLocation, v.CurrentLocation)
			assert.Equal(t, prev.LastUpdated, v.LastUpdated)
			continue
		}
		assert.True(t, v.LastUpdated.Equal(now.UTC()))
		assert.LessOrEqual(t, math.Abs(v.CurrentLocation.Lat-prev.CurrentLocation.Lat), jitter)
		assert.LessOrEqual(t, math.Abs(v.CurrentLocation.Lng-prev.CurrentLocation.Lng), jitter)
	}
}

func TestTracker_Run(t *testing.T) {
	app, _ := testutil.NewApp(t, testutil.NewDB(t, true), nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		app.Tracker.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestNewVehicle_Validate(t *testing.T) {
	validate, _ := core.NewValidator()
	base := transport.NewVehicle{Type: transport.Van, Capacity: 12, Driver: "Arun", Route: "Route 5"}

	tests := []struct {
		name    string
		reg     string
		want    string
		wantErr bool
	}{
		{name: "compact", reg: "TN01ZZ0001", want: "TN01ZZ0001"},
		{name: "separated", reg: " tn-01 zz 0001 ", want: "TN01ZZ0001"},
		{name: "punctuation", reg: "TN01/ZZ.0001", wantErr: true},
		{name: "blank", reg: " - ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nv := base
			nv.RegistrationNumber = tt.reg
			err := nv.Validate(validate)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, nv.RegistrationNumber)
			assert.Equal(t, transport.Active, nv.Status)
		})
	}
}
