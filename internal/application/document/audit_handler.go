package document

import (
	"context"

	"github.com/findoc/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditLogHandler records every document lifecycle event on the audit log.
// It subscribes to all document events and writes one structured log line
// per event; posting and voiding are logged at Info, the rest at Debug.
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(logger *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		logger: logger.Named("audit"),
	}
}

// EventTypes returns the event types this handler is interested in
func (h *AuditLogHandler) EventTypes() []string {
	return []string{
		"DocumentCreated",
		"DocumentSubmitted",
		"DocumentApproved",
		"DocumentRejected",
		"DocumentPosted",
		"DocumentVoided",
		"DocumentDeleted",
	}
}

// Handle writes one audit record for the event
func (h *AuditLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	switch event.EventType() {
	case "DocumentPosted", "DocumentVoided":
		h.logger.Info(event.EventType(), fields...)
	default:
		h.logger.Debug(event.EventType(), fields...)
	}
	return nil
}

// Ensure AuditLogHandler implements EventHandler
var _ shared.EventHandler = (*AuditLogHandler)(nil)
