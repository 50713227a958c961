package model

import "time"

// Payment method values stored in payments.method. GCASH doubles as
// the fallback for provider types the classifier does not recognize.
const (
    MethodGCash   = "GCASH"
    MethodMaya    = "MAYA"
    MethodGrabPay = "GRABPAY"
    MethodBanking = "BANKING"
)

// Payment status values stored in payments.status.
const (
    PaymentPending   = "PENDING"
    PaymentCompleted = "COMPLETED"
    PaymentFailed    = "FAILED"
)

// Payment records funds received (or expected) against a reservation.
// A reservation owns zero or more payments, which supports retried
// checkouts.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – owning reservation.
//  Amount        – amount in PHP.
//  Method        – GCASH, MAYA, GRABPAY or BANKING.
//  TransactionID – external gateway transaction/payment id.
//  ReferenceNo   – human-readable reference.
//  Status        – PENDING, COMPLETED or FAILED.
//  Notes         – optional free text.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type Payment struct {
    ID            uint64    `json:"id"`             // payments.id
    ReservationID uint64    `json:"reservation_id"` // payments.reservation_id
    Amount        float64   `json:"amount"`         // payments.amount
    Method        string    `json:"method"`         // payments.method
    TransactionID string    `json:"transaction_id"` // payments.transaction_id
    ReferenceNo   string    `json:"reference_no"`   // payments.reference_no
    Status        string    `json:"status"`         // payments.status
    Notes         *string   `json:"notes,omitempty"` // payments.notes (nullable)
    CreatedAt     time.Time `json:"created_at"`     // payments.created_at
    UpdatedAt     time.Time `json:"updated_at"`     // payments.updated_at
}
