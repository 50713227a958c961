package booking

import (
    "fmt"
    "math/rand"
    "time"
)

// NewReferenceNo generates a human-readable reservation reference of
// the form REF<epoch-millis><3-digit-random>. The random suffix makes
// collisions between bookings created in the same millisecond
// unlikely, not impossible; the reference is a correlation handle,
// never a primary key.
func NewReferenceNo() string {
    return fmt.Sprintf("REF%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
