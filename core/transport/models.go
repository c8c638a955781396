package transport

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

type (
	VehicleType   string
	VehicleStatus string
	FeeStatus     string
	JourneyStatus string
)

const (
	Bus VehicleType = "Bus"
	Van VehicleType = "Van"

	Active      VehicleStatus = "active"
	Maintenance VehicleStatus = "maintenance"

	FeePaid    FeeStatus = "paid"
	FeePending FeeStatus = "pending"

	InProgress JourneyStatus = "in-progress"
	Completed  JourneyStatus = "completed"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Vehicle struct {
	ID                 int           `json:"id"`
	RegistrationNumber string        `json:"registration_number"`
	Type               VehicleType   `json:"type"`
	Capacity           int           `json:"capacity"`
	Driver             string        `json:"driver"`
	DriverContact      string        `json:"driver_contact"`
	Route              string        `json:"route"`
	Status             VehicleStatus `json:"status"`
	CurrentLocation    Location      `json:"current_location"`
	LastUpdated        time.Time     `json:"last_updated"`
}

// Stop is a pickup point; RouteID is the ID of the vehicle serving the route.
type Stop struct {
	ID       int    `json:"id"`
	RouteID  int    `json:"route_id"`
	Name     string `json:"name"`
	Time     string `json:"time"`
	Sequence int    `json:"sequence"`
}

type Allocation struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	VehicleID int       `json:"vehicle_id"`
	StopID    int       `json:"stop_id"`
	FeeStatus FeeStatus `json:"fee_status"`
}

type Journey struct {
	ID            int           `json:"id"`
	VehicleID     int           `json:"vehicle_id"`
	Date          string        `json:"date"`
	StartTime     string        `json:"start_time"`
	EndTime       string        `json:"end_time,omitempty"`
	StartOdometer int           `json:"start_odometer"`
	EndOdometer   int           `json:"end_odometer,omitempty"`
	Status        JourneyStatus `json:"status"`
	Notes         string        `json:"notes"`
}

// JourneyLog is a journey with its rendered duration and distance; both are "-" until it completes.
type JourneyLog struct {
	Journey
	Vehicle  string `json:"vehicle"`
	Duration string `json:"duration"`
	Distance string `json:"distance"`
}

// TrackedVehicle is a vehicle on the live tracking board.
type TrackedVehicle struct {
	Vehicle
	UpdatedAgo    string   `json:"updated_ago"`
	ActiveJourney *Journey `json:"active_journey,omitempty"`
}

type NewVehicle struct {
	RegistrationNumber string        `json:"registration_number" validate:"required,alphanum_"`
	Type               VehicleType   `json:"type" validate:"required,oneof=Bus Van"`
	Capacity           int           `json:"capacity" validate:"required,gt=0"`
	Driver             string        `json:"driver" validate:"required"`
	DriverContact      string        `json:"driver_contact"`
	Route              string        `json:"route" validate:"required"`
	Status             VehicleStatus `json:"status" validate:"omitempty,oneof=active maintenance"`
	CurrentLocation    Location      `json:"current_location"`
}

var plateSeparators = strings.NewReplacer("-", "", " ", "")

func (nv *NewVehicle) Validate(validate *validator.Validate) error {
	// plates are stored compact: "tn-01 ab 1234" becomes TN01AB1234
	nv.RegistrationNumber = strings.ToUpper(plateSeparators.Replace(core.CleanString(nv.RegistrationNumber)))
	nv.Driver = core.CleanString(nv.Driver)
	nv.Route = core.CleanString(nv.Route)
	if nv.Status == "" {
		nv.Status = Active
	}
	return validate.Struct(nv)
}

type NewStop struct {
	RouteID  int    `json:"route_id" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required"`
	Time     string `json:"time" validate:"required,hhmm"`
	Sequence int    `json:"sequence" validate:"required,gt=0"`
}

func (ns *NewStop) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}

type NewAllocation struct {
	StudentID int       `json:"student_id" validate:"required,gt=0"`
	VehicleID int       `json:"vehicle_id" validate:"required,gt=0"`
	StopID    int       `json:"stop_id" validate:"required,gt=0"`
	FeeStatus FeeStatus `json:"fee_status" validate:"omitempty,oneof=paid pending"`
}

func (na *NewAllocation) Validate(validate *validator.Validate) error {
	if na.FeeStatus == "" {
		na.FeeStatus = FeePending
	}
	return validate.Struct(na)
}

type NewJourney struct {
	VehicleID     int    `json:"vehicle_id" validate:"required,gt=0"`
	Date          string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime     string `json:"start_time" validate:"required,hhmm"`
	StartOdometer int    `json:"start_odometer" validate:"gte=0"`
	Notes         string `json:"notes"`
}

func (nj *NewJourney) Validate(validate *validator.Validate) error {
	nj.Notes = core.CleanString(nj.Notes)
	return validate.Struct(nj)
}

// JourneyEnd closes an in-progress journey.
type JourneyEnd struct {
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	EndOdometer int    `json:"end_odometer" validate:"gte=0"`
	Notes       string `json:"notes"`
}

func (je *JourneyEnd) Validate(validate *validator.Validate) error {
	je.Notes = core.CleanString(je.Notes)
	return validate.Struct(je)
}

// AllocationFilter matches allocations on every non-zero field.
type AllocationFilter struct {
	StudentID int `query:"student_id"`
	VehicleID int `query:"vehicle_id"`
	StopID    int `query:"stop_id"`
}

func (af AllocationFilter) IsZero() bool {
	return af == AllocationFilter{}
}

func (af AllocationFilter) Match(a Allocation) bool {
	return (af.StudentID == 0 || a.StudentID == af.StudentID) &&
		(af.VehicleID == 0 || a.VehicleID == af.VehicleID) &&
		(af.StopID == 0 || a.StopID == af.StopID)
}

// JourneyFilter matches journeys on every non-zero field.
type JourneyFilter struct {
	VehicleID int           `query:"vehicle_id"`
	Status    JourneyStatus `query:"status"`
	Date      string        `query:"date"`
}

func (jf JourneyFilter) Match(j Journey) bool {
	return (jf.VehicleID == 0 || j.VehicleID == jf.VehicleID) &&
		(jf.Status == "" || j.Status == jf.Status) &&
		(jf.Date == "" || j.Date == jf.Date)
}

// MatchVehicle does a case-insensitive match of search on the registration number or route.
func MatchVehicle(v Vehicle, search string) bool {
	return search == "" || core.ContainsFold(v.RegistrationNumber, search) || core.ContainsFold(v.Route, search)
}
