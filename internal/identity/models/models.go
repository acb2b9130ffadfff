package models

import (
	"encoding/json"
	"time"
)

// Result error strings surfaced verbatim to end users.
const (
	ErrMsgInvalidFormat        = "Invalid ID format"
	ErrMsgInvalidProfileFormat = "Invalid Fayda ID format or checksum"
	ErrMsgNameMismatch         = "Name does not match ID records"
	ErrMsgIDRequired           = "Fayda ID is required"
)

// RegistryRecord is the identity binding held by the simulated government
// registry. It is created on the first verification of an ID and never
// rewritten afterwards.
type RegistryRecord struct {
	FaydaID      string    `json:"fayda_id"`
	FullName     string    `json:"full_name"`
	Region       string    `json:"region,omitempty"`
	BirthYear    int       `json:"birth_year,omitempty"`
	RegisteredAt time.Time `json:"-"`
}

// SameIdentity compares the fields visible to callers, ignoring bookkeeping.
func (r RegistryRecord) SameIdentity(other RegistryRecord) bool {
	return r.FaydaID == other.FaydaID &&
		r.FullName == other.FullName &&
		r.Region == other.Region &&
		r.BirthYear == other.BirthYear
}

// MarshalJSON renders an unnamed binding as "full_name": null.
func (r RegistryRecord) MarshalJSON() ([]byte, error) {
	type plain RegistryRecord
	var name *string
	if r.FullName != "" {
		name = &r.FullName
	}
	return json.Marshal(struct {
		plain
		FullName *string `json:"full_name"`
	}{plain: plain(r), FullName: name})
}

// VerificationResult is the outcome of a registry verification.
// Error is empty and Details nil when not applicable.
type VerificationResult struct {
	IsValid    bool            `json:"is_valid"`
	IsVerified bool            `json:"is_verified"`
	Error      string          `json:"error,omitempty"`
	Details    *RegistryRecord `json:"details"`
}

// ProfileResult is the outcome of validating and verifying a worker profile.
type ProfileResult struct {
	IsValidFormat bool            `json:"is_valid_format"`
	IsVerified    bool            `json:"is_verified"`
	Error         string          `json:"error,omitempty"`
	Details       *RegistryRecord `json:"details"`
}

// Outcome labels a verification for metrics and audit.
type Outcome string

const (
	OutcomeRequired      Outcome = "required"
	OutcomeInvalidFormat Outcome = "invalid_format"
	OutcomeRegistered    Outcome = "registered"
	OutcomeVerified      Outcome = "verified"
	OutcomeNameMismatch  Outcome = "name_mismatch"
)
