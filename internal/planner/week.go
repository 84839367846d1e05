package planner

import (
	"time"

	"github.com/minhtpham/mealgrid/internal/constants"
)

// WeekWindow is the Monday-to-Sunday span currently displayed. The anchor is
// always a Monday at midnight; the other six days are derived.
type WeekWindow struct {
	Anchor time.Time
}

// StartOfWeek returns the Monday of the week containing t, with the time of
// day zeroed. Weekdays are counted Monday=0..Sunday=6, so a Sunday input maps
// back six days rather than being treated as the start of a week.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// NewWeekWindow returns the window containing t.
func NewWeekWindow(t time.Time) WeekWindow {
	return WeekWindow{Anchor: StartOfWeek(t)}
}

// ThisWeek returns the window containing today.
func ThisWeek() WeekWindow {
	return NewWeekWindow(time.Now())
}

// Shift returns the window deltaDays away, renormalized to Monday. Date-only
// arithmetic keeps the span stable across DST transitions.
func (w WeekWindow) Shift(deltaDays int) WeekWindow {
	return NewWeekWindow(w.Anchor.AddDate(0, 0, deltaDays))
}

// Days returns the seven consecutive days of the window.
func (w WeekWindow) Days() [constants.DaysPerWeek]time.Time {
	var days [constants.DaysPerWeek]time.Time
	for i := range days {
		days[i] = w.Anchor.AddDate(0, 0, i)
	}
	return days
}

// DayISO returns the i-th day of the window formatted YYYY-MM-DD.
func (w WeekWindow) DayISO(i int) string {
	return FormatISO(w.Anchor.AddDate(0, 0, i))
}

// StartISO returns the anchor Monday formatted YYYY-MM-DD.
func (w WeekWindow) StartISO() string {
	return FormatISO(w.Anchor)
}

// EndISO returns the Sunday of the window formatted YYYY-MM-DD.
func (w WeekWindow) EndISO() string {
	return w.DayISO(constants.DaysPerWeek - 1)
}

// Contains reports whether the ISO date falls inside the window.
func (w WeekWindow) Contains(iso string) bool {
	for i := 0; i < constants.DaysPerWeek; i++ {
		if w.DayISO(i) == iso {
			return true
		}
	}
	return false
}

// FormatISO formats a date as YYYY-MM-DD.
func FormatISO(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// FormatDisplay formats a date for grid headers (day/month).
func FormatDisplay(t time.Time) string {
	return t.Format(constants.DisplayDateFormat)
}

// WeekdayLabel returns the short header label for the i-th column.
func WeekdayLabel(i int) string {
	labels := [constants.DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if i < 0 || i >= len(labels) {
		return ""
	}
	return labels[i]
}
