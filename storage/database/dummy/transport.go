package dummydb

import (
	"sort"

	"github.com/trezcool/shule/core/transport"
)

type transportRepository struct {
	db *DB
}

var _ transport.Repository = (*transportRepository)(nil) // interface compliance check

func NewTransportRepository(db *DB) transport.Repository {
	return &transportRepository{db: db}
}

// Vehicles

func (repo *transportRepository) CreateVehicle(v transport.Vehicle) (transport.Vehicle, error) {
	return repo.db.vehicles.insert(v), nil
}

func (repo *transportRepository) GetVehicleByID(id int) (transport.Vehicle, error) {
	if v, ok := repo.db.vehicles.get(id); ok {
		return v, nil
	}
	return transport.Vehicle{}, transport.ErrVehicleNotFound
}

func (repo *transportRepository) FilterVehicles(search string) ([]transport.Vehicle, error) {
	return repo.db.vehicles.filter(func(v transport.Vehicle) bool {
		return transport.MatchVehicle(v, search)
	}), nil
}

func (repo *transportRepository) DeleteVehicle(id int) error {
	if !repo.db.vehicles.delete(id) {
		return transport.ErrVehicleNotFound
	}
	return nil
}

func (repo *transportRepository) UpdateVehicles(update func(v *transport.Vehicle) bool) (int, error) {
	return repo.db.vehicles.updateWhere(update), nil
}

// Stops

func (repo *transportRepository) CreateStop(s transport.Stop) (transport.Stop, error) {
	return repo.db.stops.insert(s), nil
}

func (repo *transportRepository) GetStopByID(id int) (transport.Stop, error) {
	if s, ok := repo.db.stops.get(id); ok {
		return s, nil
	}
	return transport.Stop{}, transport.ErrStopNotFound
}

func (repo *transportRepository) FilterStops(routeID int) ([]transport.Stop, error) {
	stops := repo.db.stops.filter(func(s transport.Stop) bool {
		return routeID == 0 || s.RouteID == routeID
	})
	sort.SliceStable(stops, func(i, j int) bool {
		if stops[i].RouteID != stops[j].RouteID {
			return stops[i].RouteID < stops[j].RouteID
		}
		return stops[i].Sequence < stops[j].Sequence
	})
	return stops, nil
}

func (repo *transportRepository) DeleteStop(id int) error {
	if !repo.db.stops.delete(id) {
		return transport.ErrStopNotFound
	}
	return nil
}

func (repo *transportRepository) DeleteStopsByRoute(routeID int) (int, error) {
	return repo.db.stops.deleteWhere(func(s transport.Stop) bool { return s.RouteID == routeID }), nil
}

// Allocations

func (repo *transportRepository) CreateAllocation(a transport.Allocation) (transport.Allocation, error) {
	return repo.db.allocations.insert(a), nil
}

func (repo *transportRepository) FilterAllocations(filter transport.AllocationFilter) ([]transport.Allocation, error) {
	return repo.db.allocations.filter(filter.Match), nil
}

func (repo *transportRepository) DeleteAllocation(id int) error {
	if !repo.db.allocations.delete(id) {
		return transport.ErrAllocationNotFound
	}
	return nil
}

func (repo *transportRepository) DeleteAllocations(filter transport.AllocationFilter) (int, error) {
	if filter.IsZero() {
		return 0, nil // never wipe the whole table by accident
	}
	return repo.db.allocations.deleteWhere(filter.Match), nil
}

// Journeys

func (repo *transportRepository) OpenJourney(j transport.Journey) (transport.Journey, error) {
	created, ok := repo.db.journeys.insertUnless(j, func(o transport.Journey) bool {
		return o.VehicleID == j.VehicleID && o.Status == transport.InProgress
	})
	if !ok {
		return transport.Journey{}, transport.ErrJourneyInProgress
	}
	return created, nil
}

func (repo *transportRepository) GetJourneyByID(id int) (transport.Journey, error) {
	if j, ok := repo.db.journeys.get(id); ok {
		return j, nil
	}
	return transport.Journey{}, transport.ErrJourneyNotFound
}

func (repo *transportRepository) FilterJourneys(filter transport.JourneyFilter) ([]transport.Journey, error) {
	return repo.db.journeys.filter(filter.Match), nil
}

func (repo *transportRepository) ModifyJourney(id int, fn func(j *transport.Journey) error) (transport.Journey, error) {
	j, found, err := repo.db.journeys.modify(id, fn)
	if !found {
		return transport.Journey{}, transport.ErrJourneyNotFound
	}
	return j, err
}

func (repo *transportRepository) DeleteJourneysByVehicle(vehicleID int) (int, error) {
	return repo.db.journeys.deleteWhere(func(j transport.Journey) bool { return j.VehicleID == vehicleID }), nil
}
