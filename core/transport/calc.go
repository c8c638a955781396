package transport

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const minutesPerDay = 24 * 60

// ErrInvalidClock is returned for times not formatted as HH:MM.
var ErrInvalidClock = errors.New("time must be formatted as HH:MM")

// Duration returns the minutes between two HH:MM times, wrapping past midnight.
func Duration(start, end string) (int, error) {
	s, err := parseClock(start)
	if err != nil {
		return 0, errors.Wrapf(err, "start %q", start)
	}
	e, err := parseClock(end)
	if err != nil {
		return 0, errors.Wrapf(err, "end %q", end)
	}
	return ((e-s)%minutesPerDay + minutesPerDay) % minutesPerDay, nil
}

// FormatDuration renders minutes as "Xh Ym".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// Distance is the km covered by a completed journey, 0 otherwise.
func Distance(j Journey) int {
	if j.Status != Completed {
		return 0
	}
	return j.EndOdometer - j.StartOdometer
}

// TimeAgo renders how long before now t happened.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	default:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	}
}

// SortJourneys orders journeys by date, latest first, then by start time.
func SortJourneys(journeys []Journey) {
	sort.SliceStable(journeys, func(i, j int) bool {
		if journeys[i].Date != journeys[j].Date {
			return journeys[i].Date > journeys[j].Date
		}
		return journeys[i].StartTime < journeys[j].StartTime
	})
}

func parseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, ErrInvalidClock
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidClock
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, ErrInvalidClock
	}
	return h*60 + m, nil
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

func logOf(j Journey, vehicle string) JourneyLog {
	log := JourneyLog{Journey: j, Vehicle: vehicle, Duration: "-", Distance: "-"}
	if j.Status == Completed {
		if mins, err := Duration(j.StartTime, j.EndTime); err == nil {
			log.Duration = FormatDuration(mins)
		}
		log.Distance = strconv.Itoa(Distance(j)) + " km"
	}
	return log
}
