// Package store persists Fayda registry records.
//
// Every backend offers the same three operations: Find (get), Register
// (put-if-absent) and Reset. Register is the only write and is atomic in each
// backend, so two concurrent first sightings of one ID bind exactly one name.
package store

import "errors"

// Backend names, as accepted by REGISTRY_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

var errRecordRequired = errors.New("registry record is required")
