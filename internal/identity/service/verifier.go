package service

import (
	"context"
	"log/slog"

	"fayda/internal/identity/faydaid"
	"fayda/internal/identity/metrics"
	"fayda/internal/identity/models"
	"fayda/pkg/requestcontext"
)

// IDVerifier is the registry operation the profile workflow depends on.
type IDVerifier interface {
	VerifyID(ctx context.Context, faydaID, fullName string) (models.VerificationResult, error)
}

// Verifier is the entry point used by the worker profile workflow. It adds a
// required-field gate in front of the registry and, for profiles, reports
// format failures separately from identity mismatches.
type Verifier struct {
	registry IDVerifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type VerifierOption func(v *Verifier)

func WithVerifierLogger(logger *slog.Logger) VerifierOption {
	return func(v *Verifier) {
		v.logger = logger
	}
}

func WithVerifierMetrics(m *metrics.Metrics) VerifierOption {
	return func(v *Verifier) {
		v.metrics = m
	}
}

// NewVerifier constructs a Verifier over registry.
func NewVerifier(registry IDVerifier, opts ...VerifierOption) *Verifier {
	v := &Verifier{registry: registry}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VerifyWorkerID verifies a worker's Fayda ID against the registry.
func (v *Verifier) VerifyWorkerID(ctx context.Context, faydaID, fullName string) (models.VerificationResult, error) {
	if faydaID == "" {
		return models.VerificationResult{
			IsValid:    false,
			IsVerified: false,
			Error:      models.ErrMsgIDRequired,
		}, nil
	}
	return v.registry.VerifyID(ctx, faydaID, fullName)
}

// ValidateAndVerifyProfile validates the ID format, then verifies it against
// the registry.
func (v *Verifier) ValidateAndVerifyProfile(ctx context.Context, faydaID, fullName string) (models.ProfileResult, error) {
	if faydaID == "" {
		v.incrementOutcome(string(models.OutcomeRequired))
		return models.ProfileResult{Error: models.ErrMsgIDRequired}, nil
	}
	if !faydaid.ValidateFormat(faydaID) {
		v.incrementOutcome(string(models.OutcomeInvalidFormat))
		return models.ProfileResult{
			IsValidFormat: false,
			IsVerified:    false,
			Error:         models.ErrMsgInvalidProfileFormat,
		}, nil
	}

	result, err := v.VerifyWorkerID(ctx, faydaID, fullName)
	if err != nil {
		if v.logger != nil {
			v.logger.ErrorContext(ctx, "profile verification failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
		return models.ProfileResult{}, err
	}

	if result.IsVerified {
		v.incrementOutcome(string(models.OutcomeVerified))
	} else {
		v.incrementOutcome(string(models.OutcomeNameMismatch))
	}
	return models.ProfileResult{
		IsValidFormat: result.IsValid,
		IsVerified:    result.IsVerified,
		Error:         result.Error,
		Details:       result.Details,
	}, nil
}

func (v *Verifier) incrementOutcome(outcome string) {
	v.metrics.IncrementOutcome("profile", outcome)
}
