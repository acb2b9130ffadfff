// Package audit publishes verification events for downstream compliance
// consumers. Events carry a hash of the Fayda ID, never the raw ID or name.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Action names the registry decision an event records.
type Action string

const (
	ActionInvalidFormat Action = "fayda_invalid_format"
	ActionRegistered    Action = "fayda_registered"
	ActionVerified      Action = "fayda_verified"
	ActionNameMismatch  Action = "fayda_name_mismatch"
)

// Event is emitted once per registry verification.
type Event struct {
	ID            uuid.UUID `json:"id"`
	Action        Action    `json:"action"`
	SubjectIDHash string    `json:"subject_id_hash,omitempty"`
	Region        string    `json:"region,omitempty"`
	RequestID     string    `json:"request_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Publisher delivers audit events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NewEvent stamps an event with a fresh ID and hashes faydaID. An empty
// faydaID leaves SubjectIDHash empty.
func NewEvent(action Action, faydaID, region, requestID string, now time.Time) Event {
	return Event{
		ID:            uuid.New(),
		Action:        action,
		SubjectIDHash: HashSubject(faydaID),
		Region:        region,
		RequestID:     requestID,
		Timestamp:     now,
	}
}

// HashSubject returns the hex SHA-256 of a Fayda ID.
func HashSubject(faydaID string) string {
	if faydaID == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(faydaID))
	return hex.EncodeToString(sum[:])
}

// MemoryPublisher records events in memory. It backs tests and servers
// running without a broker.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a snapshot of published events.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event{}, p.events...)
}
