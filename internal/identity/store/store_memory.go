package store

import (
	"context"
	"sync"

	"fayda/internal/identity/models"
	"fayda/pkg/platform/sentinel"
)

// ErrNotFound is returned when no record is registered for a Fayda ID.
var ErrNotFound = sentinel.ErrNotFound

// InMemoryStore keeps registry records for the life of the process.
// Registration is an atomic check-and-insert under a single mutex.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.RegistryRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]models.RegistryRecord)}
}

// Find returns a copy of the record registered for faydaID.
func (s *InMemoryStore) Find(_ context.Context, faydaID string) (*models.RegistryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[faydaID]; ok {
		return &record, nil
	}
	return nil, ErrNotFound
}

// Register stores record unless its ID is already registered. It returns the
// record now held by the store and whether this call created it.
func (s *InMemoryStore) Register(_ context.Context, record *models.RegistryRecord) (*models.RegistryRecord, bool, error) {
	if record == nil {
		return nil, false, errRecordRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[record.FaydaID]; ok {
		return &existing, false, nil
	}
	s.records[record.FaydaID] = *record
	stored := *record
	return &stored, true, nil
}

// Reset drops every record. Callers serialise it against other use.
func (s *InMemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]models.RegistryRecord)
	return nil
}

// Ping always succeeds.
func (s *InMemoryStore) Ping(context.Context) error {
	return nil
}

func (s *InMemoryStore) Backend() string {
	return BackendMemory
}
