package schedule

import (
	"sort"
	"time"

	"course-service/internal/model"
)

const DateLayout = "2006-01-02"

// Occurrences lists the dates in [from, to] on which session takes place.
// A one-off session happens on its start date only. A recurring session repeats
// on its listed weekdays (or the start date's weekday when none are listed)
// until its end date or the window end.
func Occurrences(s model.Session, from, to time.Time) []time.Time {
	start, err := time.Parse(DateLayout, s.StartDate)
	if err != nil {
		return nil
	}
	from, to = truncateDay(from), truncateDay(to)

	if !s.Recurring {
		if start.Before(from) || start.After(to) {
			return nil
		}
		return []time.Time{start}
	}

	last := to
	if s.EndDate != "" {
		if end, err := time.Parse(DateLayout, s.EndDate); err == nil && end.Before(last) {
			last = end
		}
	}

	days := weekdaySet(s.Days)
	if len(days) == 0 {
		days[start.Weekday()] = true
	}

	first := start
	if from.After(first) {
		first = from
	}

	var out []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if days[d.Weekday()] {
			out = append(out, d)
		}
	}
	return out
}

type SessionMarker struct {
	Type      model.SessionType `json:"type"`
	StartTime string            `json:"startTime"`
	EndTime   string            `json:"endTime"`
	Duration  string            `json:"duration"`
}

type CalendarDay struct {
	Date     string          `json:"date,omitempty"`
	Day      int             `json:"day"`
	Sessions []SessionMarker `json:"sessions,omitempty"`
}

// MonthGrid lays the month out in Sunday-first weeks. Cells outside the month
// have Day == 0.
func MonthGrid(year int, month time.Month, sessions map[model.SessionType][]model.Session) [][]CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	markers := make(map[string][]SessionMarker)
	types := make([]model.SessionType, 0, len(sessions))
	for t := range sessions {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, t := range types {
		for _, s := range sessions[t] {
			for _, d := range Occurrences(s, first, last) {
				key := d.Format(DateLayout)
				markers[key] = append(markers[key], SessionMarker{
					Type:      t,
					StartTime: s.StartTime,
					EndTime:   s.EndTime,
					Duration:  Duration(s.StartTime, s.EndTime),
				})
			}
		}
	}

	var weeks [][]CalendarDay
	week := make([]CalendarDay, int(first.Weekday()))
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		week = append(week, CalendarDay{Date: key, Day: d.Day(), Sessions: markers[key]})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = nil
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, CalendarDay{})
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// NextOccurrence returns the first date on or after now at which any of the
// sessions takes place, searching one year ahead.
func NextOccurrence(sessions []model.Session, now time.Time) (time.Time, bool) {
	var best time.Time
	found := false
	horizon := now.AddDate(1, 0, 0)
	for _, s := range sessions {
		occ := Occurrences(s, now, horizon)
		if len(occ) == 0 {
			continue
		}
		if !found || occ[0].Before(best) {
			best = occ[0]
			found = true
		}
	}
	return best, found
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func weekdaySet(names []string) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool)
	for _, n := range names {
		for i, w := range model.Weekdays {
			if w == n {
				set[time.Weekday(i)] = true
			}
		}
	}
	return set
}
