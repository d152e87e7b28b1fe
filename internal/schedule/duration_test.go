package schedule_test

import (
	"testing"

	"course-service/internal/schedule"

	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       string
	}{
		{name: "hours and minutes", start: "09:00", end: "10:30", want: "1 hr 30 min"},
		{name: "whole hours", start: "08:00", end: "10:00", want: "2 hr"},
		{name: "minutes only", start: "13:15", end: "14:00", want: "45 min"},
		{name: "equal", start: "09:00", end: "09:00", want: ""},
		{name: "inverted", start: "11:00", end: "10:30", want: ""},
		{name: "missing end", start: "09:00", end: "", want: ""},
		{name: "garbage", start: "nine", end: "10:00", want: ""},
		{name: "out of range", start: "09:00", end: "24:10", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, schedule.Duration(tt.start, tt.end))
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	m, ok := schedule.DurationMinutes("09:00", "10:30")
	require.True(t, ok)
	require.Equal(t, 90, m)

	_, ok = schedule.DurationMinutes("10:30", "09:00")
	require.False(t, ok)
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{in: "00:00", want: 0, ok: true},
		{in: "09:05", want: 545, ok: true},
		{in: "23:59", want: 1439, ok: true},
		{in: "9:05", ok: false},
		{in: "09:5", ok: false},
		{in: "+9:05", ok: false},
		{in: "24:00", ok: false},
		{in: "12:60", ok: false},
		{in: " 09:05", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := schedule.ParseClock(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}
