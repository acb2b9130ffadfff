package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fayda/internal/identity/audit"
	"fayda/internal/identity/faydaid"
	"fayda/internal/identity/metrics"
	"fayda/internal/identity/models"
	"fayda/internal/identity/store"
	"fayda/pkg/requestcontext"
)

// Store is the registry's key-value backing: get, put-if-absent and wipe.
type Store interface {
	Find(ctx context.Context, faydaID string) (*models.RegistryRecord, error)
	Register(ctx context.Context, record *models.RegistryRecord) (*models.RegistryRecord, bool, error)
	Reset(ctx context.Context) error
}

// Registry simulates the government identity registry. The first
// verification of a well-formed ID binds the submitted name to it; later
// verifications compare against that binding and never rewrite it.
type Registry struct {
	store     Store
	publisher audit.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(r *Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func WithAuditPublisher(publisher audit.Publisher) Option {
	return func(r *Registry) {
		r.publisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry constructs a Registry over store.
func NewRegistry(store Store, opts ...Option) *Registry {
	r := &Registry{
		store:  store,
		tracer: otel.Tracer("fayda/identity/registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// VerifyID checks faydaID against the registry. An empty fullName skips name
// matching on IDs that are already registered.
//
// Verification failures are reported in the result; the error return is
// reserved for backing-store failures.
func (r *Registry) VerifyID(ctx context.Context, faydaID, fullName string) (models.VerificationResult, error) {
	ctx, span := r.tracer.Start(ctx, "Registry.VerifyID")
	defer span.End()

	id, err := faydaid.Parse(faydaID)
	if err != nil {
		span.SetAttributes(attribute.String("fayda.outcome", string(models.OutcomeInvalidFormat)))
		r.record(ctx, models.OutcomeInvalidFormat, "", "", slog.String("reason", err.Error()))
		return models.VerificationResult{
			IsValid:    false,
			IsVerified: false,
			Error:      models.ErrMsgInvalidFormat,
		}, nil
	}
	span.SetAttributes(attribute.String("fayda.region", id.Region()))

	stored, err := r.store.Find(ctx, id.String())
	if errors.Is(err, store.ErrNotFound) {
		var created bool
		stored, created, err = r.store.Register(ctx, newRecord(ctx, id, fullName))
		if err == nil && created {
			span.SetAttributes(attribute.String("fayda.outcome", string(models.OutcomeRegistered)))
			r.record(ctx, models.OutcomeRegistered, id.String(), stored.Region)
			return models.VerificationResult{IsValid: true, IsVerified: true, Details: stored}, nil
		}
		// A concurrent first sighting won the race; compare against its binding.
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "registry store failed")
		return models.VerificationResult{}, fmt.Errorf("verify fayda id: %w", err)
	}

	return r.compare(ctx, span, id, fullName, stored), nil
}

func (r *Registry) compare(ctx context.Context, span trace.Span, id faydaid.ID, fullName string, stored *models.RegistryRecord) models.VerificationResult {
	if fullName != "" && fullName != stored.FullName {
		span.SetAttributes(attribute.String("fayda.outcome", string(models.OutcomeNameMismatch)))
		r.record(ctx, models.OutcomeNameMismatch, id.String(), stored.Region)
		return models.VerificationResult{
			IsValid:    true,
			IsVerified: false,
			Error:      models.ErrMsgNameMismatch,
			Details:    stored,
		}
	}
	span.SetAttributes(attribute.String("fayda.outcome", string(models.OutcomeVerified)))
	r.record(ctx, models.OutcomeVerified, id.String(), stored.Region)
	return models.VerificationResult{IsValid: true, IsVerified: true, Details: stored}
}

// Reset wipes every registry record. It exists for test isolation and is not
// safe to run concurrently with verifications.
func (r *Registry) Reset(ctx context.Context) error {
	if err := r.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset registry: %w", err)
	}
	if r.logger != nil {
		r.logger.WarnContext(ctx, "fayda registry reset",
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return nil
}

func newRecord(ctx context.Context, id faydaid.ID, fullName string) *models.RegistryRecord {
	return &models.RegistryRecord{
		FaydaID:      id.String(),
		FullName:     fullName,
		Region:       id.Region(),
		BirthYear:    id.BirthYear(),
		RegisteredAt: requestcontext.Now(ctx),
	}
}

var outcomeActions = map[models.Outcome]audit.Action{
	models.OutcomeInvalidFormat: audit.ActionInvalidFormat,
	models.OutcomeRegistered:    audit.ActionRegistered,
	models.OutcomeVerified:      audit.ActionVerified,
	models.OutcomeNameMismatch:  audit.ActionNameMismatch,
}

// record logs, counts and audits one registry decision. Audit failures are
// logged and counted but never change the result.
func (r *Registry) record(ctx context.Context, outcome models.Outcome, faydaID, region string, extra ...any) {
	requestID := requestcontext.RequestID(ctx)
	r.metrics.IncrementOutcome("registry", string(outcome))

	if r.logger != nil {
		args := append([]any{
			"outcome", string(outcome),
			"region", region,
			"request_id", requestID,
		}, extra...)
		r.logger.InfoContext(ctx, "fayda id verification", args...)
	}

	if r.publisher == nil {
		return
	}
	event := audit.NewEvent(outcomeActions[outcome], faydaID, region, requestID, requestcontext.Now(ctx))
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.metrics.IncrementAuditFailures()
		if r.logger != nil {
			r.logger.ErrorContext(ctx, "failed to publish fayda audit event",
				"action", string(event.Action),
				"request_id", requestID,
				"error", err,
			)
		}
	}
}
