// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when payment reconciliation
// confirms one or more court reservations. It carries enough for
// downstream consumers to log or notify without querying the primary
// database.
type ReservationConfirmedEvent struct {
    PaymentRef    string             `json:"payment_ref"`
    UserID        uint64             `json:"user_id"`
    CustomerName  string             `json:"customer_name"`
    CustomerEmail string             `json:"customer_email"`
    TotalAmount   float64            `json:"total_amount"`
    Method        string             `json:"method"`
    Bookings      []ConfirmedBooking `json:"bookings"`
    ConfirmedAt   string             `json:"confirmed_at"`
}

// ConfirmedBooking is one court/slot line inside a confirmed payment.
type ConfirmedBooking struct {
    ReservationID uint64 `json:"reservation_id"`
    CourtName     string `json:"court_name"`
    Date          string `json:"date"`
    StartTime     string `json:"start_time"`
    EndTime       string `json:"end_time"`
}
