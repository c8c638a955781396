package session

import (
	"github.com/pkg/errors"
)

// Role is one of the four fixed access levels. The zero value is not a valid role.
type Role int

const (
	roleUnknown Role = iota
	Admin
	Teacher
	Student
	Parent
)

var (
	Roles = []Role{Admin, Teacher, Student, Parent}

	roleNames = map[Role]string{
		Admin:   "admin",
		Teacher: "teacher",
		Student: "student",
		Parent:  "parent",
	}

	roleTitles = map[Role]string{
		Admin:   "Admin",
		Teacher: "Teacher",
		Student: "Student",
		Parent:  "Parent",
	}

	// used to address messages to everyone holding a role
	rolePlurals = map[Role]string{
		Admin:   "Admins",
		Teacher: "Teachers",
		Student: "Students",
		Parent:  "Parents",
	}

	ErrInvalidRole = errors.New("invalid role")
)

func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if name == s {
			return r, nil
		}
	}
	return roleUnknown, ErrInvalidRole
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Title is the display name of the role, e.g. "Teacher".
func (r Role) Title() string {
	return roleTitles[r]
}

// Plural is the audience name of the role, e.g. "Teachers".
func (r Role) Plural() string {
	return rolePlurals[r]
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrInvalidRole
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// HasPermission reports whether role satisfies required.
// Admin satisfies everything; any other role only satisfies itself.
func HasPermission(role, required Role) bool {
	if role == Admin {
		return true
	}
	return role.Valid() && role == required
}
