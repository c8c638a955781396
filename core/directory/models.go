package directory

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

type Student struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Class         string `json:"class"`
	Section       string `json:"section"`
	Gender        string `json:"gender"`
	DOB           string `json:"dob"`
	Contact       string `json:"contact"`
	Address       string `json:"address"`
	Parent        string `json:"parent"`
	ParentContact string `json:"parent_contact"`
	ParentEmail   string `json:"parent_email"`
}

// InClass reports whether the student sits in class and section; empty values match anything.
func (s Student) InClass(class, section string) bool {
	return (class == "" || s.Class == class) && (section == "" || s.Section == section)
}

type Staff struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"` // designation, e.g. Teacher, Accountant
	Subject  string `json:"subject"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
	JoinDate string `json:"join_date"`
}

type Class struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Section       string `json:"section"`
	ClassTeacher  string `json:"class_teacher"`
	TotalStudents int    `json:"total_students"` // derived
}

// NewStudent contains information needed to enroll a Student.
type NewStudent struct {
	Name          string `json:"name" validate:"required"`
	Class         string `json:"class" validate:"required"`
	Section       string `json:"section" validate:"required"`
	Gender        string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	DOB           string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Contact       string `json:"contact"`
	Address       string `json:"address"`
	Parent        string `json:"parent"`
	ParentContact string `json:"parent_contact"`
	ParentEmail   string `json:"parent_email" validate:"omitempty,email"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Class = core.CleanString(ns.Class)
	ns.Section = strings.ToUpper(core.CleanString(ns.Section))
	ns.Parent = core.CleanString(ns.Parent)
	ns.ParentEmail = core.CleanString(ns.ParentEmail, true /* lower */)
	return validate.Struct(ns)
}

// NewStaff contains information needed to add a Staff member.
type NewStaff struct {
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required"`
	Subject  string `json:"subject"`
	Contact  string `json:"contact"`
	Email    string `json:"email" validate:"omitempty,email"`
	JoinDate string `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
}

func (ns *NewStaff) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Role = core.CleanString(ns.Role)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return validate.Struct(ns)
}

type NewClass struct {
	Name         string `json:"name" validate:"required"`
	Section      string `json:"section" validate:"required"`
	ClassTeacher string `json:"class_teacher"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Section = strings.ToUpper(core.CleanString(nc.Section))
	nc.ClassTeacher = core.CleanString(nc.ClassTeacher)
	return validate.Struct(nc)
}

// QueryFilter narrows student, staff and class listings.
// Search does a case-insensitive match on names (and class, section or designation).
type QueryFilter struct {
	Search  string `query:"search"`
	Class   string `query:"class"`
	Section string `query:"section"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Class = core.CleanString(qf.Class)
	qf.Section = strings.ToUpper(core.CleanString(qf.Section))
}
