package audit

import (
	"context"
	"log/slog"
)

// LogPublisher writes audit events to a structured logger. It is the sink
// when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "audit event",
		"event_id", event.ID.String(),
		"action", string(event.Action),
		"subject_id_hash", event.SubjectIDHash,
		"region", event.Region,
		"request_id", event.RequestID,
		"timestamp", event.Timestamp,
	)
	return nil
}
