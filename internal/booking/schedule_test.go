package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScheduleRange(t *testing.T) {
	tests := []struct {
		schedule string
		start    string
		end      string
	}{
		{"9:00 AM - 10:00 AM", "09:00:00", "10:00:00"},
		{"12:00 PM - 1:00 PM", "12:00:00", "13:00:00"},
		{"12:00 AM - 1:00 AM", "00:00:00", "01:00:00"},
		{"10:00 PM - 11:00 PM", "22:00:00", "23:00:00"},
		{"9:00 am - 10:00 am", "09:00:00", "10:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			start, end, err := ParseScheduleRange(tt.schedule)
			require.NoError(t, err)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestParseScheduleRangeErrors(t *testing.T) {
	for _, schedule := range []string{"", "9:00 AM", "morning - noon", "25:00 AM - 26:00 AM"} {
		t.Run(schedule, func(t *testing.T) {
			_, _, err := ParseScheduleRange(schedule)
			assert.Error(t, err)
		})
	}
}
