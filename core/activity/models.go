package activity

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

type (
	Type              string
	Status            string
	ParticipantStatus string
)

const (
	Sports   Type = "Sports"
	Cultural Type = "Cultural"

	Upcoming  Status = "upcoming"
	Completed Status = "completed"

	Confirmed ParticipantStatus = "confirmed"
	Pending   ParticipantStatus = "pending"
)

type Activity struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Type         Type   `json:"type"`
	Category     string `json:"category"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Coordinators []int  `json:"coordinators"` // staff IDs
	Venue        string `json:"venue"`
	Status       Status `json:"status"`
	Description  string `json:"description"`
}

type Participant struct {
	ID         int               `json:"id"`
	ActivityID int               `json:"activity_id"`
	StudentID  int               `json:"student_id"`
	Category   string            `json:"category"`
	Events     Events            `json:"events"`
	Status     ParticipantStatus `json:"status"`
}

// Events decodes from either a JSON list or a comma-separated string.
type Events []string

func (e *Events) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*e = SplitEvents(list...)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*e = SplitEvents(s)
	return nil
}

// SplitEvents splits comma-separated event names, trimming them and dropping blanks.
func SplitEvents(raw ...string) Events {
	events := Events{}
	for _, r := range raw {
		for _, ev := range strings.Split(r, ",") {
			if ev = strings.TrimSpace(ev); ev != "" {
				events = append(events, ev)
			}
		}
	}
	return events
}

type NewActivity struct {
	Name         string `json:"name" validate:"required"`
	Type         Type   `json:"type" validate:"required,oneof=Sports Cultural"`
	Category     string `json:"category"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Coordinators []int  `json:"coordinators" validate:"dive,gt=0"`
	Venue        string `json:"venue"`
	Status       Status `json:"status" validate:"omitempty,oneof=upcoming completed"`
	Description  string `json:"description"`
}

func (na *NewActivity) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.Category = core.CleanString(na.Category)
	na.Venue = core.CleanString(na.Venue)
	na.Description = core.CleanString(na.Description)
	if na.Status == "" {
		na.Status = Upcoming
	}
	if err := validate.Struct(na); err != nil {
		return err
	}
	if na.EndDate < na.StartDate {
		return core.NewFieldError("end_date", "end_date must not be before start_date")
	}
	return nil
}

type NewParticipant struct {
	StudentID int               `json:"student_id" validate:"required,gt=0"`
	Category  string            `json:"category"`
	Events    Events            `json:"events" validate:"required,min=1"`
	Status    ParticipantStatus `json:"status" validate:"omitempty,oneof=confirmed pending"`
}

func (np *NewParticipant) Validate(validate *validator.Validate) error {
	np.Category = core.CleanString(np.Category)
	np.Events = SplitEvents(np.Events...)
	if np.Status == "" {
		np.Status = Pending
	}
	return validate.Struct(np)
}

type QueryFilter struct {
	Type   Type   `query:"type"`
	Status Status `query:"status"`
}

func (qf QueryFilter) Match(a Activity) bool {
	return (qf.Type == "" || a.Type == qf.Type) && (qf.Status == "" || a.Status == qf.Status)
}
