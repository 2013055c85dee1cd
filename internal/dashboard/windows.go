package dashboard

import "time"

// window is a half-open time range [start, end).
type window struct {
	start time.Time
	end   time.Time
}

func (w window) contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// dayWindows returns count calendar days ending with today, oldest first.
func dayWindows(today time.Time, count int) []window {
	windows := make([]window, count)
	for i := range count {
		start := today.AddDate(0, 0, i-(count-1))
		windows[i] = window{start: start, end: start.AddDate(0, 0, 1)}
	}
	return windows
}

// monthWindows returns count calendar months ending with the month of now, oldest first.
func monthWindows(now time.Time, count int) []window {
	current := startOfMonth(now)
	windows := make([]window, count)
	for i := range count {
		start := current.AddDate(0, i-(count-1), 0)
		windows[i] = window{start: start, end: start.AddDate(0, 1, 0)}
	}
	return windows
}

func locate(windows []window, t time.Time) int {
	if len(windows) == 0 || t.Before(windows[0].start) || !t.Before(windows[len(windows)-1].end) {
		return -1
	}
	for i, w := range windows {
		if w.contains(t) {
			return i
		}
	}
	return -1
}
