package model

import "time"

// Suggestion is free-text customer feedback. It sits outside the
// reservation/payment core and tolerates best-effort persistence: the
// handler falls back to an in-memory store when the database is
// unreachable.
type Suggestion struct {
    ID        uint64    `json:"id"`
    UserID    uint64    `json:"user_id"`
    Message   string    `json:"message"`
    CreatedAt time.Time `json:"created_at"`
}
