// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrSlotConflict indicates that an overlapping active booking
// already holds the requested slot and time range, while
// ErrInvalidTransition signals that a status change is not permitted by
// the booking state machine.
package repository

import "errors"

// ErrSlotConflict is returned when a booking cannot be created because
// another active (pending or confirmed) booking overlaps the requested
// interval for the same slot. Handlers should translate this into an
// HTTP 409 response.
var ErrSlotConflict = errors.New("slot already booked for this time range")

// ErrInvalidTransition is returned when a status update is rejected by
// the booking transition table (e.g. completed -> pending). Handlers
// should translate this into an HTTP 409 response.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")
