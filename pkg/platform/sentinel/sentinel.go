package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and infrastructure layers return
// these (optionally wrapped) so services and handlers can translate them:
// - ErrNotFound: record does not exist in store
// - ErrConflict: record already exists and was not overwritten
// - ErrUnavailable: backing store or broker temporarily unavailable
//
// Verification failures (bad format, name mismatch) are never errors; they are
// reported in result fields.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
