package activity

import (
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrNotFound            = core.NewNotFoundError("activity")
	ErrParticipantNotFound = core.NewNotFoundError("participant")
)

type (
	Repository interface {
		CreateActivity(a Activity) (Activity, error)
		GetActivityByID(id int) (Activity, error)
		FilterActivities(filter QueryFilter) ([]Activity, error)
		DeleteActivity(id int) error
		// RemoveCoordinator drops staffID from every activity's coordinators.
		RemoveCoordinator(staffID int) (int, error)

		CreateParticipant(p Participant) (Participant, error)
		// FilterParticipants returns participants of activityID and/or studentID; zero values match any.
		FilterParticipants(activityID, studentID int) ([]Participant, error)
		DeleteParticipant(id int) error
		DeleteParticipantsByActivity(activityID int) (int, error)
		DeleteParticipantsByStudent(studentID int) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Add(na NewActivity) (Activity, error) {
	coordinators := na.Coordinators
	if coordinators == nil {
		coordinators = []int{}
	}
	return svc.repo.CreateActivity(Activity{
		Name:         na.Name,
		Type:         na.Type,
		Category:     na.Category,
		StartDate:    na.StartDate,
		EndDate:      na.EndDate,
		Coordinators: coordinators,
		Venue:        na.Venue,
		Status:       na.Status,
		Description:  na.Description,
	})
}

func (svc *Service) Get(id int) (Activity, error) {
	return svc.repo.GetActivityByID(id)
}

func (svc *Service) List(filter QueryFilter) ([]Activity, error) {
	return svc.repo.FilterActivities(filter)
}

// Remove deletes the activity and its participants.
func (svc *Service) Remove(id int) error {
	if err := svc.repo.DeleteActivity(id); err != nil {
		return err
	}
	if _, err := svc.repo.DeleteParticipantsByActivity(id); err != nil {
		return errors.Wrap(err, "deleting activity participants")
	}
	return nil
}

func (svc *Service) RemoveCoordinator(staffID int) error {
	_, err := svc.repo.RemoveCoordinator(staffID)
	return err
}

// Register signs a student up for an activity.
func (svc *Service) Register(activityID int, np NewParticipant) (Participant, error) {
	if _, err := svc.repo.GetActivityByID(activityID); err != nil {
		return Participant{}, err
	}
	return svc.repo.CreateParticipant(Participant{
		ActivityID: activityID,
		StudentID:  np.StudentID,
		Category:   np.Category,
		Events:     np.Events,
		Status:     np.Status,
	})
}

func (svc *Service) Participants(activityID int) ([]Participant, error) {
	return svc.repo.FilterParticipants(activityID, 0)
}

func (svc *Service) RemoveParticipant(id int) error {
	return svc.repo.DeleteParticipant(id)
}

func (svc *Service) RemoveParticipantsByStudent(studentID int) error {
	_, err := svc.repo.DeleteParticipantsByStudent(studentID)
	return err
}
