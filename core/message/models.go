package message

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/session"
)

// Audience kinds a message can be addressed to.
const (
	ToAll      = "all"
	ToTeachers = "teachers"
	ToStudents = "students"
	ToParents  = "parents"
	ToClass    = "class"
	ToPerson   = "person"

	Everyone = "All"
)

type Message struct {
	ID      int    `json:"id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// NewMessage is a message being composed; To is synthesized from the audience fields.
type NewMessage struct {
	Audience string `json:"audience" validate:"required,oneof=all teachers students parents class person"`
	Class    string `json:"class" validate:"required_if=Audience class"`
	Section  string `json:"section" validate:"required_if=Audience class"`
	Person   string `json:"person" validate:"required_if=Audience person"`
	Subject  string `json:"subject" validate:"required"`
	Message  string `json:"message" validate:"required"`
}

func (nm *NewMessage) Validate(validate *validator.Validate) error {
	nm.Audience = core.CleanString(nm.Audience, true /* lower */)
	nm.Class = core.CleanString(nm.Class)
	nm.Section = core.CleanString(nm.Section)
	nm.Person = core.CleanString(nm.Person)
	nm.Subject = core.CleanString(nm.Subject)
	return validate.Struct(nm)
}

// Recipient renders an audience as the message's To field:
// "All", "Teachers", "Students", "Parents", "Class {class}{section}" or the person's name.
func Recipient(audience, class, section, person string) string {
	switch audience {
	case ToTeachers:
		return session.Teacher.Plural()
	case ToStudents:
		return session.Student.Plural()
	case ToParents:
		return session.Parent.Plural()
	case ToClass:
		return "Class " + class + section
	case ToPerson:
		return person
	default:
		return Everyone
	}
}

// IsFor reports whether the message reaches id: sent to everyone, to id's role or to id by name.
func (m Message) IsFor(id session.Identity) bool {
	return m.To == Everyone || m.To == id.Role.Plural() || m.To == id.Role.String() || m.To == id.Name
}
