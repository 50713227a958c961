package model

import "time"

// Court status values stored in courts.status.
const (
    CourtAvailable   = "AVAILABLE"
    CourtMaintenance = "MAINTENANCE"
    CourtUnavailable = "UNAVAILABLE"
)

// Court represents a bookable badminton court as stored in the
// `courts` table. Courts are administrator-managed reference data;
// reservations point at them but never mutate them.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name, unique (e.g. "Court 1").
//  Description – optional free text shown to customers.
//  Status      – AVAILABLE, MAINTENANCE or UNAVAILABLE.
//  HourlyPrice – price per one-hour slot in PHP.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Court struct {
    ID          uint64    `json:"id"`           // courts.id
    Name        string    `json:"name"`         // courts.name
    Description *string   `json:"description,omitempty"` // courts.description (nullable)
    Status      string    `json:"status"`       // courts.status
    HourlyPrice float64   `json:"hourly_price"` // courts.hourly_price
    CreatedAt   time.Time `json:"created_at"`   // courts.created_at
    UpdatedAt   time.Time `json:"updated_at"`   // courts.updated_at
}

// Bookable reports whether new reservations may be taken on the court.
func (c Court) Bookable() bool { return c.Status == CourtAvailable }
