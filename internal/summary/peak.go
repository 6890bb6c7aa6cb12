package summary

import (
	"fmt"
	"strings"
	"time"
)

// PeakWindow splits the day into on-peak and off-peak hours:
// - on-peak during [Start, End)
// - off-peak otherwise
//
// Times are "HH:MM" and compared against the hour timestamp of each row.
type PeakWindow struct {
	Start string
	End   string

	startMins int
	endMins   int
}

// DefaultPeakWindow is HE8..HE23: hours 07:00 through 22:59 are on-peak, hours
// 00:00-06:59 and 23:00 are off-peak.
func DefaultPeakWindow() PeakWindow {
	w, _ := NewPeakWindow("07:00", "23:00")
	return w
}

func NewPeakWindow(start, end string) (PeakWindow, error) {
	s, err := parseHHMM(start)
	if err != nil {
		return PeakWindow{}, err
	}
	e, err := parseHHMM(end)
	if err != nil {
		return PeakWindow{}, err
	}
	if s == e {
		return PeakWindow{}, fmt.Errorf("peak window %s-%s is empty", start, end)
	}
	return PeakWindow{Start: start, End: end, startMins: s, endMins: e}, nil
}

// IsOnPeak reports whether t falls in the on-peak window.
func (w PeakWindow) IsOnPeak(t time.Time) bool {
	mins := t.Hour()*60 + t.Minute()
	return inWindow(mins, w.startMins, w.endMins)
}

func (w PeakWindow) String() string {
	return w.Start + "-" + w.End
}

func parseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(parts[0], "%d", &h); err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &m); err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	// 24:00 is accepted as end of day
	if h == 24 && m == 0 {
		return 24 * 60, nil
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

// inWindow checks whether tMins is in [start, end) on a 24h clock.
// If start > end, the window wraps across midnight.
func inWindow(tMins, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return tMins >= start && tMins < end
	}
	return tMins >= start || tMins < end
}
