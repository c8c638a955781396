package dummydb

import (
	"github.com/trezcool/shule/core/message"
	"github.com/trezcool/shule/core/timetable"
)

type messageRepository struct {
	db *DB
}

var _ message.Repository = (*messageRepository)(nil) // interface compliance check

func NewMessageRepository(db *DB) message.Repository {
	return &messageRepository{db: db}
}

func (repo *messageRepository) CreateMessage(m message.Message) (message.Message, error) {
	return repo.db.messages.insert(m), nil
}

func (repo *messageRepository) QueryMessages() ([]message.Message, error) {
	return repo.db.messages.all(), nil
}

func (repo *messageRepository) DeleteMessage(id int) error {
	if !repo.db.messages.delete(id) {
		return message.ErrNotFound
	}
	return nil
}

type timetableRepository struct {
	db *DB
}

var _ timetable.Repository = (*timetableRepository)(nil) // interface compliance check

func NewTimetableRepository(db *DB) timetable.Repository {
	return &timetableRepository{db: db}
}

func (repo *timetableRepository) SaveTimetable(tt timetable.Timetable) (timetable.Timetable, error) {
	return repo.db.timetables.upsert(tt, timetable.Timetable.SameKey), nil
}

func (repo *timetableRepository) FilterTimetables(filter timetable.QueryFilter) ([]timetable.Timetable, error) {
	return repo.db.timetables.filter(filter.Match), nil
}

func (repo *timetableRepository) DeleteTimetable(id int) error {
	if !repo.db.timetables.delete(id) {
		return timetable.ErrNotFound
	}
	return nil
}
