package kafka

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/request"
)

// NopPublisher drops events. It is used when no broker is configured.
type NopPublisher struct {
	logger *slog.Logger
}

func NewNopPublisher(logger *slog.Logger) NopPublisher {
	return NopPublisher{logger: logger.With("component", "nop-publisher")}
}

func (p NopPublisher) Publish(ctx context.Context, events ...request.StatusChanged) {
	for _, e := range events {
		p.logger.DebugContext(ctx, "status event dropped",
			"request_id", e.RequestID, "from", e.From, "to", e.To)
	}
}

func (NopPublisher) Close() error { return nil }
