package model

import "time"

// Reservation status values stored in reservations.status.
// PENDING and CONFIRMED are live states; COMPLETED and CANCELLED are
// terminal and admit no further transition.
const (
    ReservationPending   = "PENDING"
    ReservationConfirmed = "CONFIRMED"
    ReservationCancelled = "CANCELLED"
    ReservationCompleted = "COMPLETED"
)

// Reservation records a user's claim on a court for a date and time
// window. Start/End times are stored as "HH:MM:SS" strings mirroring
// the TIME columns; lexicographic comparison on that format matches
// chronological order, which the overlap checks rely on.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who owns the reservation.
//  CourtID     – court being reserved.
//  Date        – booking date ("YYYY-MM-DD").
//  StartTime   – inclusive start ("HH:MM:SS").
//  EndTime     – exclusive end ("HH:MM:SS").
//  Status      – PENDING, CONFIRMED, CANCELLED or COMPLETED.
//  TotalAmount – total price (court + equipment) in PHP.
//  ReferenceNo – human-readable reference stamped at creation.
//  PaymentRef  – external payment-gateway reference, if any.
//  Notes       – optional free text.
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Reservation struct {
    ID          uint64    `json:"id"`           // reservations.id
    UserID      uint64    `json:"user_id"`      // reservations.user_id
    CourtID     uint64    `json:"court_id"`     // reservations.court_id
    Date        string    `json:"date"`         // reservations.date
    StartTime   string    `json:"start_time"`   // reservations.start_time
    EndTime     string    `json:"end_time"`     // reservations.end_time
    Status      string    `json:"status"`       // reservations.status
    TotalAmount float64   `json:"total_amount"` // reservations.total_amount
    ReferenceNo string    `json:"reference_no"` // reservations.reference_no (unique)
    PaymentRef  *string   `json:"payment_ref,omitempty"` // reservations.payment_ref (nullable)
    Notes       *string   `json:"notes,omitempty"`       // reservations.notes (nullable)
    CreatedAt   time.Time `json:"created_at"`   // reservations.created_at
    UpdatedAt   time.Time `json:"updated_at"`   // reservations.updated_at
}

// CanTransition reports whether a status change is legal under the
// reservation state machine: PENDING→CONFIRMED→{COMPLETED,CANCELLED},
// PENDING→CANCELLED. Identity transitions are legal only for the live
// states; terminal states admit nothing, not even a same-status
// write, so COMPLETED and CANCELLED rows stay read-only.
func CanTransition(from, to string) bool {
    switch from {
    case ReservationPending:
        return to == ReservationPending || to == ReservationConfirmed || to == ReservationCancelled
    case ReservationConfirmed:
        return to == ReservationConfirmed || to == ReservationCompleted || to == ReservationCancelled
    }
    return false
}
