// Package booking holds the pure pricing, scheduling and
// classification rules of the reservation flow. Nothing in this
// package touches the database or the network, which keeps every
// rule deterministic and unit-testable.
package booking

import (
    "errors"

    "github.com/iliyamo/court-reservation/internal/model"
)

// ErrInvalidQuantity is returned when an equipment selection carries
// a quantity below one.
var ErrInvalidQuantity = errors.New("equipment quantity must be at least 1")

// EquipmentSelection pairs a resolved equipment record with the
// quantity requested for the booking. Resolution of equipment IDs to
// records happens in the handler layer; unknown IDs never reach this
// package.
type EquipmentSelection struct {
    Equipment model.Equipment
    Quantity  uint32
}

// ComputeTotal returns the total price for one booking hour:
// the court's hourly price plus unit price times quantity for each
// selected equipment item.
func ComputeTotal(court model.Court, selections []EquipmentSelection) (float64, error) {
    total := court.HourlyPrice
    for _, sel := range selections {
        if sel.Quantity < 1 {
            return 0, ErrInvalidQuantity
        }
        total += sel.Equipment.UnitPrice * float64(sel.Quantity)
    }
    return total, nil
}
