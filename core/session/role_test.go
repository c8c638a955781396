package session

import (
	"encoding/json"
	"testing"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		want     bool
	}{
		{name: "admin/admin", role: Admin, required: Admin, want: true},
		{name: "admin/teacher", role: Admin, required: Teacher, want: true},
		{name: "admin/student", role: Admin, required: Student, want: true},
		{name: "admin/parent", role: Admin, required: Parent, want: true},
		{name: "teacher/admin", role: Teacher, required: Admin, want: false},
		{name: "teacher/teacher", role: Teacher, required: Teacher, want: true},
		{name: "student/teacher", role: Student, required: Teacher, want: false},
		{name: "parent/parent", role: Parent, required: Parent, want: true},
		{name: "parent/student", role: Parent, required: Student, want: false},
		{name: "unknown/unknown", role: roleUnknown, required: roleUnknown, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPermission(tt.role, tt.required); got != tt.want {
				t.Errorf("HasPermission(%v, %v) = %v; want %v", tt.role, tt.required, got, tt.want)
			}
		})
	}
}

func TestCan(t *testing.T) {
	for _, c := range Capabilities {
		if !Can(Admin, c) {
			t.Errorf("Can(admin, %s) = false; want true", c)
		}
	}

	tests := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{Teacher, CapStudents, true},
		{Teacher, CapReports, true},
		{Teacher, CapSocialPost, true},
		{Student, CapStudents, false},
		{Student, CapCommunication, true},
		{Student, CapSocialPost, false},
		{Student, CapTransportTracking, false},
		{Parent, CapTransportTracking, true},
		{Parent, CapTransport, false},
		{Parent, CapFees, false},
		{Parent, CapDashboard, true},
		{roleUnknown, CapDashboard, false},
	}
	for _, tt := range tests {
		t.Run(tt.role.String()+"/"+string(tt.cap), func(t *testing.T) {
			if got := Can(tt.role, tt.cap); got != tt.want {
				t.Errorf("Can(%v, %s) = %v; want %v", tt.role, tt.cap, got, tt.want)
			}
		})
	}
}

func TestCapabilitiesOf(t *testing.T) {
	got := CapabilitiesOf(Parent)
	want := []Capability{CapDashboard, CapTransportTracking, CapCommunication, CapSocial, CapActivities, CapAssistant}
	if len(got) != len(want) {
		t.Fatalf("CapabilitiesOf(parent) = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CapabilitiesOf(parent)[%d] = %s; want %s", i, got[i], want[i])
		}
	}
}

func TestRoleJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{Teacher})
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	if string(data) != `{"role":"teacher"}` {
		t.Errorf("json.Marshal() = %s; want %s", data, `{"role":"teacher"}`)
	}

	var dst struct {
		Role Role `json:"role"`
	}
	if err := json.Unmarshal([]byte(`{"role":"parent"}`), &dst); err != nil {
		t.Fatalf("json.Unmarshal() failed: %v", err)
	}
	if dst.Role != Parent {
		t.Errorf("json.Unmarshal() role = %v; want %v", dst.Role, Parent)
	}
	if err := json.Unmarshal([]byte(`{"role":"principal"}`), &dst); err == nil {
		t.Error("json.Unmarshal() accepted an unknown role")
	}
}
