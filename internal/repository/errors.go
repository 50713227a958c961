// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting SQL errors: a missing court maps to 404, an unavailable
// court to 422, a slot conflict to 409 and so on.
package repository

import "errors"

// ErrCourtNotFound is returned when no court exists for the given id
// or name. Handlers should translate this into an HTTP 404 response
// (or 400 when the lookup came from webhook booking metadata).
var ErrCourtNotFound = errors.New("court not found")

// ErrEquipmentNotFound is returned when an equipment id referenced by
// a booking does not exist.
var ErrEquipmentNotFound = errors.New("equipment not found")

// ErrReservationNotFound is returned when a reservation lookup by id
// yields no row for the requesting user.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrCourtUnavailable is returned when a booking targets a court whose
// status is not AVAILABLE (maintenance or retired).
var ErrCourtUnavailable = errors.New("court is not available for booking")

// ErrSlotConflict is returned when a confirmed reservation already
// occupies an overlapping time window on the same court and date.
// Handlers should translate this into an HTTP 409 response.
var ErrSlotConflict = errors.New("time slot already reserved")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")
