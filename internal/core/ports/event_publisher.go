package ports

import (
	"context"

	"dispatch/internal/core/domain/model/request"
)

// EventPublisher forwards status changes to downstream consumers.
//
// Publishing happens after the change is stored and is best effort: implementations log
// delivery failures themselves and never block the lifecycle operation on a broker.
type EventPublisher interface {
	Publish(ctx context.Context, events ...request.StatusChanged)
}
