package request

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// StatusChanged is raised by every successful lifecycle change, creation included
// (From is Unknown for a newly created request).
type StatusChanged struct {
	RequestID  kernel.UUID
	From       Status
	To         Status
	DriverID   *kernel.UUID
	OccurredAt time.Time
}
