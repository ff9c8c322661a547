// Package queries contains read operations over delivery requests and the driver directory.
// Queries never change state and return plain read models.
package queries

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
)

// RequestView is the read model of a delivery request.
type RequestView struct {
	ID           kernel.UUID
	Pickup       kernel.GeoPoint
	Dropoff      kernel.GeoPoint
	WeightKg     float64
	VehicleClass kernel.VehicleClass
	Status       request.Status
	DriverID     *kernel.UUID
	DistanceKm   float64
	Price        float64
	EtaMinutes   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewRequestView flattens an aggregate into its read model. Command results are rendered
// through it too, so the API shows one shape for a request.
func NewRequestView(r *request.DeliveryRequest) RequestView {
	return RequestView{
		ID:           r.ID(),
		Pickup:       r.Pickup(),
		Dropoff:      r.Dropoff(),
		WeightKg:     r.WeightKg(),
		VehicleClass: r.VehicleClass(),
		Status:       r.Status(),
		DriverID:     r.DriverID(),
		DistanceKm:   r.Quote().DistanceKm,
		Price:        r.Price(),
		EtaMinutes:   r.EtaMinutes(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}
