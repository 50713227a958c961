package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/court-reservation/internal/model"
)

func TestHourlyBands(t *testing.T) {
	bands := HourlyBands()
	require.Len(t, bands, 15)
	assert.Equal(t, "08:00:00", bands[0].StartTime)
	assert.Equal(t, "09:00:00", bands[0].EndTime)
	assert.Equal(t, "22:00:00", bands[14].StartTime)
	assert.Equal(t, "23:00:00", bands[14].EndTime)
	for _, b := range bands {
		assert.True(t, b.Available)
	}
}

func TestMarkAvailability(t *testing.T) {
	reserved := []model.Reservation{
		{StartTime: "10:00:00", EndTime: "11:00:00", Status: model.ReservationConfirmed},
	}
	bands := MarkAvailability(HourlyBands(), reserved)
	require.Len(t, bands, 15)
	for _, b := range bands {
		if b.StartTime == "10:00:00" {
			assert.False(t, b.Available, "reserved band must be blocked")
		} else {
			assert.True(t, b.Available, "band %s should stay free", b.StartTime)
		}
	}
}

func TestMarkAvailabilityIgnoresNonConfirmed(t *testing.T) {
	reserved := []model.Reservation{
		{StartTime: "10:00:00", EndTime: "11:00:00", Status: model.ReservationPending},
		{StartTime: "12:00:00", EndTime: "13:00:00", Status: model.ReservationCancelled},
	}
	for _, b := range MarkAvailability(HourlyBands(), reserved) {
		assert.True(t, b.Available)
	}
}

// A reservation that starts mid-band and spills past the band end
// must block both bands it touches.
func TestMarkAvailabilityPartialOverlap(t *testing.T) {
	reserved := []model.Reservation{
		{StartTime: "09:30:00", EndTime: "10:30:00", Status: model.ReservationConfirmed},
	}
	blocked := map[string]bool{}
	for _, b := range MarkAvailability(HourlyBands(), reserved) {
		if !b.Available {
			blocked[b.StartTime] = true
		}
	}
	assert.Equal(t, map[string]bool{"09:00:00": true, "10:00:00": true}, blocked)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"identical", "09:00:00", "10:00:00", "09:00:00", "10:00:00", true},
		{"half hour shift", "09:00:00", "10:00:00", "09:30:00", "10:30:00", true},
		{"adjacent", "09:00:00", "10:00:00", "10:00:00", "11:00:00", false},
		{"disjoint", "09:00:00", "10:00:00", "12:00:00", "13:00:00", false},
		{"containment", "09:00:00", "12:00:00", "10:00:00", "11:00:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}
