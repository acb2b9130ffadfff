package audit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while the breaker is shedding audit events.
var ErrCircuitOpen = errors.New("audit circuit open")

// CircuitBreaker stops hammering an unhealthy broker. After threshold
// consecutive failures it opens for cooldown, then lets a single probe
// through (half-open).
type CircuitBreaker struct {
	mu sync.Mutex

	threshold int
	cooldown  time.Duration
	now       func() time.Time

	failures  int
	openUntil time.Time
	isOpen    bool
	probing   bool
}

// NewCircuitBreaker creates a breaker. Non-positive arguments fall back to
// five failures and one minute.
func NewCircuitBreaker(threshold int, cooldown time.Duration) *CircuitBreaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &CircuitBreaker{threshold: threshold, cooldown: cooldown, now: time.Now}
}

// Allow reports whether a publish may be attempted.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if !cb.isOpen {
		return true
	}
	if cb.probing || cb.now().Before(cb.openUntil) {
		return false
	}
	cb.probing = true
	return true
}

// RecordSuccess closes the circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
	cb.isOpen = false
	cb.probing = false
}

// RecordFailure counts a failure; a failed probe reopens immediately.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	if cb.probing || cb.failures >= cb.threshold {
		cb.isOpen = true
		cb.probing = false
		cb.openUntil = cb.now().Add(cb.cooldown)
	}
}

// IsOpen reports whether the circuit is open.
func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.isOpen
}

// GuardedPublisher fails fast with ErrCircuitOpen while its breaker is open.
type GuardedPublisher struct {
	next    Publisher
	breaker *CircuitBreaker
}

func NewGuardedPublisher(next Publisher, breaker *CircuitBreaker) *GuardedPublisher {
	return &GuardedPublisher{next: next, breaker: breaker}
}

func (p *GuardedPublisher) Publish(ctx context.Context, event Event) error {
	if !p.breaker.Allow() {
		return ErrCircuitOpen
	}
	if err := p.next.Publish(ctx, event); err != nil {
		p.breaker.RecordFailure()
		return err
	}
	p.breaker.RecordSuccess()
	return nil
}
