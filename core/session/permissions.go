package session

// Capability is an area of the app a role may be granted.
type Capability string

const (
	CapStudents          Capability = "students"
	CapStaff             Capability = "staff"
	CapClasses           Capability = "classes"
	CapAttendance        Capability = "attendance"
	CapExams             Capability = "exams"
	CapTimetable         Capability = "timetable"
	CapFees              Capability = "fees"
	CapReports           Capability = "reports"
	CapTransport         Capability = "transport"
	CapTransportTracking Capability = "transport-tracking"
	CapCommunication     Capability = "communication"
	CapSocial            Capability = "social"
	CapSocialPost        Capability = "social-post"
	CapActivities        Capability = "activities"
	CapAssistant         Capability = "assistant"
	CapDashboard         Capability = "dashboard"
)

var (
	staffOnly = []Role{Teacher}
	everyone  = []Role{Teacher, Student, Parent}

	// permissions maps each capability to the roles granted it. Admin is implied.
	permissions = map[Capability][]Role{
		CapStudents:          staffOnly,
		CapStaff:             staffOnly,
		CapClasses:           staffOnly,
		CapAttendance:        staffOnly,
		CapExams:             staffOnly,
		CapTimetable:         staffOnly,
		CapFees:              staffOnly,
		CapReports:           staffOnly,
		CapTransport:         staffOnly,
		CapTransportTracking: {Teacher, Parent},
		CapCommunication:     everyone,
		CapSocial:            everyone,
		CapSocialPost:        staffOnly,
		CapActivities:        everyone,
		CapAssistant:         everyone,
		CapDashboard:         everyone,
	}

	Capabilities = []Capability{
		CapDashboard, CapStudents, CapStaff, CapClasses, CapAttendance, CapExams, CapTimetable, CapFees,
		CapReports, CapTransport, CapTransportTracking, CapCommunication, CapSocial, CapSocialPost,
		CapActivities, CapAssistant,
	}
)

// Can reports whether role is granted capability.
func Can(role Role, capability Capability) bool {
	if role == Admin {
		return true
	}
	for _, r := range permissions[capability] {
		if r == role {
			return true
		}
	}
	return false
}

// CapabilitiesOf lists every capability granted to role, in menu order.
func CapabilitiesOf(role Role) []Capability {
	caps := make([]Capability, 0, len(Capabilities))
	for _, c := range Capabilities {
		if Can(role, c) {
			caps = append(caps, c)
		}
	}
	return caps
}
