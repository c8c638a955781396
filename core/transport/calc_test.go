package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
		wantErr    bool
	}{
		{start: "07:15", end: "08:45", want: 90},
		{start: "14:30", end: "16:00", want: 90},
		{start: "23:30", end: "00:15", want: 45},
		{start: "08:00", end: "08:00", want: 0},
		{start: "8:05", end: "9:00", want: 55},
		{start: "24:00", end: "08:00", wantErr: true},
		{start: "07:60", end: "08:00", wantErr: true},
		{start: "0715", end: "08:00", wantErr: true},
		{start: "07:15", end: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			got, err := Duration(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Duration() error = %v; wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Duration() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0h 0m"},
		{45, "0h 45m"},
		{90, "1h 30m"},
		{1439, "23h 59m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q; want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	done := Journey{StartOdometer: 12450, EndOdometer: 12472, Status: Completed}
	if got := Distance(done); got != 22 {
		t.Errorf("Distance(completed) = %d; want 22", got)
	}
	open := Journey{StartOdometer: 5620, Status: InProgress}
	if got := Distance(open); got != 0 {
		t.Errorf("Distance(in-progress) = %d; want 0", got)
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 4, 20, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{2 * time.Hour, "2 hours ago"},
		{49 * time.Hour, "2 days ago"},
	}
	for _, tt := range tests {
		if got := TimeAgo(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("TimeAgo(-%v) = %q; want %q", tt.ago, got, tt.want)
		}
	}
}

func TestSortJourneys(t *testing.T) {
	journeys := []Journey{
		{ID: 1, Date: "2025-04-19", StartTime: "14:30"},
		{ID: 2, Date: "2025-04-19", StartTime: "07:15"},
		{ID: 3, Date: "2025-04-20", StartTime: "07:10"},
		{ID: 4, Date: "2025-04-19", StartTime: "07:00"},
	}
	SortJourneys(journeys)

	var ids []int
	for _, j := range journeys {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []int{3, 4, 2, 1}, ids)
}

func TestLogOf(t *testing.T) {
	done := logOf(Journey{StartTime: "07:15", EndTime: "08:45", StartOdometer: 12450, EndOdometer: 12472, Status: Completed}, "TN01AB1234")
	assert.Equal(t, "1h 30m", done.Duration)
	assert.Equal(t, "22 km", done.Distance)

	open := logOf(Journey{StartTime: "07:10", StartOdometer: 5620, Status: InProgress}, "TN01GH3456")
	assert.Equal(t, "-", open.Duration)
	assert.Equal(t, "-", open.Distance)
}

func TestMatchVehicle(t *testing.T) {
	v := Vehicle{RegistrationNumber: "TN01AB1234", Route: "Route 1 - North City"}
	tests := []struct {
		search string
		want   bool
	}{
		{"", true},
		{"tn01ab", true},
		{"north", true},
		{"south", false},
	}
	for _, tt := range tests {
		if got := MatchVehicle(v, tt.search); got != tt.want {
			t.Errorf("MatchVehicle(%q) = %v; want %v", tt.search, got, tt.want)
		}
	}
}
