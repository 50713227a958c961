package model

import "time"

// Equipment represents a rentable item (racket, shuttlecock tube,
// shoes) as stored in the `equipment` table. Pricing reads the unit
// price; the stock count is informational and is not decremented by
// reservations.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name, unique.
//  UnitPrice – rental price per booking-hour in PHP.
//  Stock     – units on hand, informational only.
//  Status    – AVAILABLE or UNAVAILABLE.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Equipment struct {
    ID        uint64    `json:"id"`         // equipment.id
    Name      string    `json:"name"`       // equipment.name
    UnitPrice float64   `json:"unit_price"` // equipment.unit_price
    Stock     uint32    `json:"stock"`      // equipment.stock
    Status    string    `json:"status"`     // equipment.status
    CreatedAt time.Time `json:"created_at"` // equipment.created_at
    UpdatedAt time.Time `json:"updated_at"` // equipment.updated_at
}
