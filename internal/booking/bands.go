package booking

import (
    "fmt"

    "github.com/iliyamo/court-reservation/internal/model"
)

// The booking day runs in fixed one-hour bands from 08:00 to 23:00,
// fifteen bands in total.
const (
    dayOpenHour  = 8
    dayCloseHour = 23
)

// HourlyBands returns the fixed catalog of hourly time slots for one
// booking day, all marked available. Callers pass the result through
// MarkAvailability to fold in existing reservations.
func HourlyBands() []model.TimeSlot {
    bands := make([]model.TimeSlot, 0, dayCloseHour-dayOpenHour)
    for h := dayOpenHour; h < dayCloseHour; h++ {
        bands = append(bands, model.TimeSlot{
            StartTime: fmt.Sprintf("%02d:00:00", h),
            EndTime:   fmt.Sprintf("%02d:00:00", h+1),
            Available: true,
        })
    }
    return bands
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Times are "HH:MM:SS" strings, which
// compare lexicographically in chronological order.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
    return aStart < bEnd && aEnd > bStart
}

// MarkAvailability flags every band that intersects a CONFIRMED
// reservation as unavailable and returns the same slice. Reservations
// in other states never block a band.
func MarkAvailability(bands []model.TimeSlot, reservations []model.Reservation) []model.TimeSlot {
    for i := range bands {
        for _, r := range reservations {
            if r.Status != model.ReservationConfirmed {
                continue
            }
            if Overlaps(r.StartTime, r.EndTime, bands[i].StartTime, bands[i].EndTime) {
                bands[i].Available = false
                break
            }
        }
    }
    return bands
}
