package directory

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrStudentNotFound = core.NewNotFoundError("student")
	ErrStaffNotFound   = core.NewNotFoundError("staff member")
	ErrClassNotFound   = core.NewNotFoundError("class")
)

type (
	Repository interface {
		CreateStudent(s Student) (Student, error)
		GetStudentByID(id int) (Student, error)
		// FilterStudents applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Student.Name, Student.Class or Student.Section.
		FilterStudents(filter QueryFilter) ([]Student, error)
		DeleteStudent(id int) error

		CreateStaff(s Staff) (Staff, error)
		GetStaffByID(id int) (Staff, error)
		// QueryFilter.Search does a case-insensitive match on one of Staff.Name, Staff.Role or Staff.Subject.
		FilterStaff(filter QueryFilter) ([]Staff, error)
		DeleteStaff(id int) error

		CreateClass(c Class) (Class, error)
		FilterClasses(filter QueryFilter) ([]Class, error)
		DeleteClass(id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Students

func (svc *Service) AddStudent(ns NewStudent) (Student, error) {
	return svc.repo.CreateStudent(Student{
		Name:          ns.Name,
		Class:         ns.Class,
		Section:       ns.Section,
		Gender:        ns.Gender,
		DOB:           ns.DOB,
		Contact:       ns.Contact,
		Address:       ns.Address,
		Parent:        ns.Parent,
		ParentContact: ns.ParentContact,
		ParentEmail:   ns.ParentEmail,
	})
}

func (svc *Service) GetStudent(id int) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) ListStudents(filter QueryFilter) ([]Student, error) {
	return svc.repo.FilterStudents(filter)
}

// RemoveStudent only removes the student record. See school.App.RemoveStudent for the cascade.
func (svc *Service) RemoveStudent(id int) error {
	return svc.repo.DeleteStudent(id)
}

// StudentIDs returns the roster of a class section, in enrollment order.
func (svc *Service) StudentIDs(class, section string) ([]int, error) {
	students, err := svc.repo.FilterStudents(QueryFilter{Class: class, Section: section})
	if err != nil {
		return nil, errors.Wrap(err, "filtering students")
	}
	ids := make([]int, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

// StudentName resolves a student ID to its name, or a "Student {id}" placeholder.
func (svc *Service) StudentName(id int) string {
	if s, err := svc.repo.GetStudentByID(id); err == nil {
		return s.Name
	}
	return Placeholder(id)
}

// Staff

func (svc *Service) AddStaff(ns NewStaff) (Staff, error) {
	return svc.repo.CreateStaff(Staff{
		Name:     ns.Name,
		Role:     ns.Role,
		Subject:  ns.Subject,
		Contact:  ns.Contact,
		Email:    ns.Email,
		JoinDate: ns.JoinDate,
	})
}

func (svc *Service) GetStaff(id int) (Staff, error) {
	return svc.repo.GetStaffByID(id)
}

func (svc *Service) ListStaff(filter QueryFilter) ([]Staff, error) {
	return svc.repo.FilterStaff(filter)
}

// RemoveStaff only removes the staff record. See school.App.RemoveStaff for the cascade.
func (svc *Service) RemoveStaff(id int) error {
	return svc.repo.DeleteStaff(id)
}

// Classes

func (svc *Service) AddClass(nc NewClass) (Class, error) {
	cls, err := svc.repo.CreateClass(Class{
		Name:         nc.Name,
		Section:      nc.Section,
		ClassTeacher: nc.ClassTeacher,
	})
	if err != nil {
		return Class{}, err
	}
	return svc.withTotals(cls)
}

// ListClasses returns classes with TotalStudents counted from the current enrollment.
func (svc *Service) ListClasses(filter QueryFilter) ([]Class, error) {
	classes, err := svc.repo.FilterClasses(filter)
	if err != nil {
		return nil, errors.Wrap(err, "filtering classes")
	}
	students, err := svc.repo.FilterStudents(QueryFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "filtering students")
	}
	for i := range classes {
		classes[i].TotalStudents = countInClass(students, classes[i])
	}
	return classes, nil
}

func (svc *Service) RemoveClass(id int) error {
	return svc.repo.DeleteClass(id)
}

func (svc *Service) withTotals(cls Class) (Class, error) {
	students, err := svc.repo.FilterStudents(QueryFilter{Class: cls.Name, Section: cls.Section})
	if err != nil {
		return Class{}, errors.Wrap(err, "filtering students")
	}
	cls.TotalStudents = len(students)
	return cls, nil
}

func countInClass(students []Student, cls Class) int {
	var n int
	for _, s := range students {
		if s.Class == cls.Name && s.Section == cls.Section {
			n++
		}
	}
	return n
}

// Placeholder is shown in place of a student that no longer exists.
func Placeholder(id int) string {
	return "Student " + strconv.Itoa(id)
}
