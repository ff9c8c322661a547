package ports

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
)

// LifecycleMetrics receives counters from the lifecycle command handlers.
type LifecycleMetrics interface {
	RequestCreated(class kernel.VehicleClass)
	StatusChanged(from, to request.Status)
	// AssignmentConflict counts accept/assign attempts that lost to a concurrent change.
	AssignmentConflict(operation string)
}

// NopLifecycleMetrics discards every observation.
type NopLifecycleMetrics struct{}

func (NopLifecycleMetrics) RequestCreated(kernel.VehicleClass) {}
func (NopLifecycleMetrics) StatusChanged(_, _ request.Status)  {}
func (NopLifecycleMetrics) AssignmentConflict(string)          {}
