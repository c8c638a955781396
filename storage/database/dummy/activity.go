package dummydb

import (
	"github.com/trezcool/shule/core/activity"
	"github.com/trezcool/shule/core/social"
)

type activityRepository struct {
	db *DB
}

var _ activity.Repository = (*activityRepository)(nil) // interface compliance check

func NewActivityRepository(db *DB) activity.Repository {
	return &activityRepository{db: db}
}

func (repo *activityRepository) CreateActivity(a activity.Activity) (activity.Activity, error) {
	return repo.db.activities.insert(a), nil
}

func (repo *activityRepository) GetActivityByID(id int) (activity.Activity, error) {
	if a, ok := repo.db.activities.get(id); ok {
		return a, nil
	}
	return activity.Activity{}, activity.ErrNotFound
}

func (repo *activityRepository) FilterActivities(filter activity.QueryFilter) ([]activity.Activity, error) {
	return repo.db.activities.filter(filter.Match), nil
}

func (repo *activityRepository) DeleteActivity(id int) error {
	if !repo.db.activities.delete(id) {
		return activity.ErrNotFound
	}
	return nil
}

func (repo *activityRepository) RemoveCoordinator(staffID int) (int, error) {
	return repo.db.activities.updateWhere(func(a *activity.Activity) bool {
		kept := make([]int, 0, len(a.Coordinators))
		for _, id := range a.Coordinators {
			if id != staffID {
				kept = append(kept, id)
			}
		}
		if len(kept) == len(a.Coordinators) {
			return false
		}
		a.Coordinators = kept
		return true
	}), nil
}

func (repo *activityRepository) CreateParticipant(p activity.Participant) (activity.Participant, error) {
	return repo.db.participants.insert(p), nil
}

func (repo *activityRepository) FilterParticipants(activityID, studentID int) ([]activity.Participant, error) {
	return repo.db.participants.filter(func(p activity.Participant) bool {
		return (activityID == 0 || p.ActivityID == activityID) && (studentID == 0 || p.StudentID == studentID)
	}), nil
}

func (repo *activityRepository) DeleteParticipant(id int) error {
	if !repo.db.participants.delete(id) {
		return activity.ErrParticipantNotFound
	}
	return nil
}

func (repo *activityRepository) DeleteParticipantsByActivity(activityID int) (int, error) {
	return repo.db.participants.deleteWhere(func(p activity.Participant) bool { return p.ActivityID == activityID }), nil
}

func (repo *activityRepository) DeleteParticipantsByStudent(studentID int) (int, error) {
	return repo.db.participants.deleteWhere(func(p activity.Participant) bool { return p.StudentID == studentID }), nil
}

type socialRepository struct {
	db *DB
}

var _ social.Repository = (*socialRepository)(nil) // interface compliance check

func NewSocialRepository(db *DB) social.Repository {
	return &socialRepository{db: db}
}

func (repo *socialRepository) CreatePost(p social.Post) (social.Post, error) {
	return repo.db.posts.insert(p), nil
}

func (repo *socialRepository) GetPostByID(id int) (social.Post, error) {
	if p, ok := repo.db.posts.get(id); ok {
		return p, nil
	}
	return social.Post{}, social.ErrNotFound
}

func (repo *socialRepository) QueryPosts() ([]social.Post, error) {
	return repo.db.posts.all(), nil
}

func (repo *socialRepository) UpdatePost(id int, update func(p *social.Post)) (social.Post, error) {
	if p, ok := repo.db.posts.update(id, update); ok {
		return p, nil
	}
	return social.Post{}, social.ErrNotFound
}

func (repo *socialRepository) DeletePost(id int) error {
	if !repo.db.posts.delete(id) {
		return social.ErrNotFound
	}
	return nil
}
