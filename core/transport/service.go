package transport

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrVehicleNotFound    = core.NewNotFoundError("vehicle")
	ErrStopNotFound       = core.NewNotFoundError("stop")
	ErrAllocationNotFound = core.NewNotFoundError("allocation")
	ErrJourneyNotFound    = core.NewNotFoundError("journey")

	ErrJourneyInProgress = core.NewFieldError("vehicle_id", "vehicle already has a journey in progress")
)

type (
	Repository interface {
		CreateVehicle(v Vehicle) (Vehicle, error)
		GetVehicleByID(id int) (Vehicle, error)
		// FilterVehicles does a case-insensitive match on Vehicle.RegistrationNumber or Vehicle.Route.
		FilterVehicles(search string) ([]Vehicle, error)
		DeleteVehicle(id int) error
		// UpdateVehicles calls update on every vehicle while holding the collection lock and
		// keeps the changes of those it returned true for.
		UpdateVehicles(update func(v *Vehicle) bool) (int, error)

		CreateStop(s Stop) (Stop, error)
		GetStopByID(id int) (Stop, error)
		// FilterStops returns the stops of routeID (any route when 0) ordered by route and sequence.
		FilterStops(routeID int) ([]Stop, error)
		DeleteStop(id int) error
		DeleteStopsByRoute(routeID int) (int, error)

		CreateAllocation(a Allocation) (Allocation, error)
		FilterAllocations(filter AllocationFilter) ([]Allocation, error)
		DeleteAllocation(id int) error
		DeleteAllocations(filter AllocationFilter) (int, error)

		// OpenJourney creates j unless its vehicle already has a journey in progress,
		// in which case it fails with ErrJourneyInProgress.
		OpenJourney(j Journey) (Journey, error)
		GetJourneyByID(id int) (Journey, error)
		FilterJourneys(filter JourneyFilter) ([]Journey, error)
		// ModifyJourney applies fn to the journey with id atomically; nothing is saved when fn fails.
		ModifyJourney(id int, fn func(j *Journey) error) (Journey, error)
		DeleteJourneysByVehicle(vehicleID int) (int, error)
	}

	Service struct {
		repo   Repository
		events core.Publisher
		logger core.Logger
	}
)

func NewService(repo Repository, events core.Publisher, logger core.Logger) *Service {
	return &Service{repo: repo, events: events, logger: logger}
}

// Vehicles

func (svc *Service) AddVehicle(nv NewVehicle) (Vehicle, error) {
	return svc.repo.CreateVehicle(Vehicle{
		RegistrationNumber: nv.RegistrationNumber,
		Type:               nv.Type,
		Capacity:           nv.Capacity,
		Driver:             nv.Driver,
		DriverContact:      nv.DriverContact,
		Route:              nv.Route,
		Status:             nv.Status,
		CurrentLocation:    nv.CurrentLocation,
		LastUpdated:        nowFunc().UTC(),
	})
}

func (svc *Service) GetVehicle(id int) (Vehicle, error) {
	return svc.repo.GetVehicleByID(id)
}

func (svc *Service) FilterVehicles(search string) ([]Vehicle, error) {
	return svc.repo.FilterVehicles(strings.TrimSpace(search))
}

// RemoveVehicle deletes the vehicle along with its route stops, allocations and journeys.
func (svc *Service) RemoveVehicle(id int) error {
	if err := svc.repo.DeleteVehicle(id); err != nil {
		return err
	}
	if _, err := svc.repo.DeleteStopsByRoute(id); err != nil {
		return errors.Wrap(err, "deleting vehicle stops")
	}
	if _, err := svc.repo.DeleteAllocations(AllocationFilter{VehicleID: id}); err != nil {
		return errors.Wrap(err, "deleting vehicle allocations")
	}
	if _, err := svc.repo.DeleteJourneysByVehicle(id); err != nil {
		return errors.Wrap(err, "deleting vehicle journeys")
	}
	return nil
}

// Tracking lists vehicles matching search with their last update age and open journey.
func (svc *Service) Tracking(search string) ([]TrackedVehicle, error) {
	vehicles, err := svc.FilterVehicles(search)
	if err != nil {
		return nil, errors.Wrap(err, "filtering vehicles")
	}
	open, err := svc.repo.FilterJourneys(JourneyFilter{Status: InProgress})
	if err != nil {
		return nil, errors.Wrap(err, "filtering journeys")
	}
	byVehicle := make(map[int]Journey, len(open))
	for _, j := range open {
		byVehicle[j.VehicleID] = j
	}

	now := nowFunc()
	tracked := make([]TrackedVehicle, 0, len(vehicles))
	for _, v := range vehicles {
		tv := TrackedVehicle{Vehicle: v, UpdatedAgo: TimeAgo(v.LastUpdated, now)}
		if j, ok := byVehicle[v.ID]; ok {
			tv.ActiveJourney = &j
		}
		tracked = append(tracked, tv)
	}
	return tracked, nil
}

// Stops

func (svc *Service) AddStop(ns NewStop) (Stop, error) {
	if _, err := svc.repo.GetVehicleByID(ns.RouteID); err != nil {
		return Stop{}, err
	}
	return svc.repo.CreateStop(Stop{
		RouteID:  ns.RouteID,
		Name:     ns.Name,
		Time:     ns.Time,
		Sequence: ns.Sequence,
	})
}

func (svc *Service) ListStops(routeID int) ([]Stop, error) {
	return svc.repo.FilterStops(routeID)
}

// RemoveStop deletes the stop and the allocations picking up there.
func (svc *Service) RemoveStop(id int) error {
	if err := svc.repo.DeleteStop(id); err != nil {
		return err
	}
	if _, err := svc.repo.DeleteAllocations(AllocationFilter{StopID: id}); err != nil {
		return errors.Wrap(err, "deleting stop allocations")
	}
	return nil
}

// Allocations

// Allocate assigns a student to a vehicle and one of the stops on its route.
func (svc *Service) Allocate(na NewAllocation) (Allocation, error) {
	if _, err := svc.repo.GetVehicleByID(na.VehicleID); err != nil {
		return Allocation{}, err
	}
	stop, err := svc.repo.GetStopByID(na.StopID)
	if err != nil {
		return Allocation{}, err
	}
	if stop.RouteID != na.VehicleID {
		return Allocation{}, core.NewFieldError("stop_id", "stop is not on the vehicle's route")
	}
	return svc.repo.CreateAllocation(Allocation{
		StudentID: na.StudentID,
		VehicleID: na.VehicleID,
		StopID:    na.StopID,
		FeeStatus: na.FeeStatus,
	})
}

func (svc *Service) ListAllocations(filter AllocationFilter) ([]Allocation, error) {
	return svc.repo.FilterAllocations(filter)
}

func (svc *Service) RemoveAllocation(id int) error {
	return svc.repo.DeleteAllocation(id)
}

func (svc *Service) RemoveAllocationsByStudent(studentID int) error {
	if studentID <= 0 {
		return nil
	}
	_, err := svc.repo.DeleteAllocations(AllocationFilter{StudentID: studentID})
	return err
}

// Journeys

// StartJourney opens a journey for an active vehicle with no other journey in progress.
func (svc *Service) StartJourney(ctx context.Context, nj NewJourney) (Journey, error) {
	v, err := svc.repo.GetVehicleByID(nj.VehicleID)
	if err != nil {
		return Journey{}, err
	}
	if v.Status != Active {
		return Journey{}, core.NewFieldError("vehicle_id", "vehicle is under maintenance")
	}

	date := nj.Date
	if date == "" {
		date = nowFunc().Format(core.DateLayout)
	}
	j, err := svc.repo.OpenJourney(Journey{
		VehicleID:     v.ID,
		Date:          date,
		StartTime:     nj.StartTime,
		StartOdometer: nj.StartOdometer,
		Status:        InProgress,
		Notes:         nj.Notes,
	})
	if err != nil {
		return Journey{}, errors.Wrap(err, "opening journey")
	}
	svc.publish(ctx, core.EventJourneyStarted, j)
	return j, nil
}

// EndJourney completes an in-progress journey, appending je.Notes to its notes.
func (svc *Service) EndJourney(ctx context.Context, id int, je JourneyEnd) (Journey, error) {
	j, err := svc.repo.ModifyJourney(id, func(j *Journey) error {
		if j.Status != InProgress {
			return core.NewFieldError("status", "journey is already completed")
		}
		if je.EndOdometer < j.StartOdometer {
			return core.NewFieldError("end_odometer", "end odometer must not be below the start odometer")
		}

		j.EndTime = je.EndTime
		j.EndOdometer = je.EndOdometer
		j.Status = Completed
		switch {
		case je.Notes == "":
		case j.Notes == "":
			j.Notes = je.Notes
		default:
			j.Notes += "; " + je.Notes
		}
		return nil
	})
	if err != nil {
		return Journey{}, err
	}
	svc.publish(ctx, core.EventJourneyEnded, j)
	return j, nil
}

// JourneyLogs lists journeys, latest date first, with their duration and distance.
func (svc *Service) JourneyLogs(filter JourneyFilter) ([]JourneyLog, error) {
	journeys, err := svc.repo.FilterJourneys(filter)
	if err != nil {
		return nil, errors.Wrap(err, "filtering journeys")
	}
	SortJourneys(journeys)

	logs := make([]JourneyLog, 0, len(journeys))
	for _, j := range journeys {
		logs = append(logs, logOf(j, svc.registration(j.VehicleID)))
	}
	return logs, nil
}

// MoveVehicles applies move to every active vehicle and stamps it with now.
func (svc *Service) MoveVehicles(now time.Time, move func(Location) Location) (int, error) {
	return svc.repo.UpdateVehicles(func(v *Vehicle) bool {
		if v.Status != Active {
			return false
		}
		v.CurrentLocation = move(v.CurrentLocation)
		v.LastUpdated = now.UTC()
		return true
	})
}

func (svc *Service) registration(vehicleID int) string {
	if v, err := svc.repo.GetVehicleByID(vehicleID); err == nil {
		return v.RegistrationNumber
	}
	return "Vehicle " + strconv.Itoa(vehicleID)
}

func (svc *Service) publish(ctx context.Context, typ string, j Journey) {
	if err := svc.events.Publish(ctx, core.NewEvent(typ, j)); err != nil {
		svc.logger.Warn("publishing "+typ, errors.Wrap(err, "publishing event"))
	}
}
