// Package repository implements data access for the training CRM over
// database/sql. Sentinel errors shared by several repositories live
// here; lookup-specific not-found sentinels live next to their repo.
package repository

import "errors"

// ErrSeatLocked is returned when a manual editing action targets a
// locked seat. Handlers translate it into HTTP 409.
var ErrSeatLocked = errors.New("seat is locked")

// ErrRowLimit is returned when adding a row would exceed the 12-row
// cap. Handlers translate it into HTTP 409.
var ErrRowLimit = errors.New("row limit reached")
