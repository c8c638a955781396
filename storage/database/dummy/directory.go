package dummydb

import (
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/directory"
)

type directoryRepository struct {
	db *DB
}

var _ directory.Repository = (*directoryRepository)(nil) // interface compliance check

func NewDirectoryRepository(db *DB) directory.Repository {
	return &directoryRepository{db: db}
}

func (repo *directoryRepository) CreateStudent(s directory.Student) (directory.Student, error) {
	return repo.db.students.insert(s), nil
}

func (repo *directoryRepository) GetStudentByID(id int) (directory.Student, error) {
	if s, ok := repo.db.students.get(id); ok {
		return s, nil
	}
	return directory.Student{}, directory.ErrStudentNotFound
}

func (repo *directoryRepository) FilterStudents(filter directory.QueryFilter) ([]directory.Student, error) {
	return repo.db.students.filter(func(s directory.Student) bool {
		// students with search keyword matching any Name, Class or Section ?
		if filter.Search != "" &&
			!core.ContainsFold(s.Name, filter.Search) &&
			!core.ContainsFold(s.Class, filter.Search) &&
			!core.ContainsFold(s.Section, filter.Search) {
			return false
		}
		return s.InClass(filter.Class, filter.Section)
	}), nil
}

func (repo *directoryRepository) DeleteStudent(id int) error {
	if !repo.db.students.delete(id) {
		return directory.ErrStudentNotFound
	}
	return nil
}

func (repo *directoryRepository) CreateStaff(s directory.Staff) (directory.Staff, error) {
	return repo.db.staff.insert(s), nil
}

func (repo *directoryRepository) GetStaffByID(id int) (directory.Staff, error) {
	if s, ok := repo.db.staff.get(id); ok {
		return s, nil
	}
	return directory.Staff{}, directory.ErrStaffNotFound
}

func (repo *directoryRepository) FilterStaff(filter directory.QueryFilter) ([]directory.Staff, error) {
	return repo.db.staff.filter(func(s directory.Staff) bool {
		return filter.Search == "" ||
			core.ContainsFold(s.Name, filter.Search) ||
			core.ContainsFold(s.Role, filter.Search) ||
			core.ContainsFold(s.Subject, filter.Search)
	}), nil
}

func (repo *directoryRepository) DeleteStaff(id int) error {
	if !repo.db.staff.delete(id) {
		return directory.ErrStaffNotFound
	}
	return nil
}

func (repo *directoryRepository) CreateClass(c directory.Class) (directory.Class, error) {
	return repo.db.classes.insert(c), nil
}

func (repo *directoryRepository) FilterClasses(filter directory.QueryFilter) ([]directory.Class, error) {
	return repo.db.classes.filter(func(c directory.Class) bool {
		if filter.Search != "" &&
			!core.ContainsFold(c.Name, filter.Search) &&
			!core.ContainsFold(c.Section, filter.Search) &&
			!core.ContainsFold(c.ClassTeacher, filter.Search) {
			return false
		}
		return (filter.Class == "" || c.Name == filter.Class) && (filter.Section == "" || c.Section == filter.Section)
	}), nil
}

func (repo *directoryRepository) DeleteClass(id int) error {
	if !repo.db.classes.delete(id) {
		return directory.ErrClassNotFound
	}
	return nil
}
