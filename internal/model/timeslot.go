package model

// TimeSlot is one fixed hourly band of the booking day. The catalog
// of slots is generated in code (08:00 through 23:00) rather than
// persisted; it is used for display and availability enumeration and
// is not physically linked to reservation rows.
//
// Fields:
//  StartTime – inclusive start of the band ("08:00:00").
//  EndTime   – exclusive end of the band ("09:00:00").
//  Available – whether the band is free of confirmed reservations.
type TimeSlot struct {
    StartTime string `json:"start_time"`
    EndTime   string `json:"end_time"`
    Available bool   `json:"available"`
}
