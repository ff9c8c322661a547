// Package requestrepo persists delivery requests with GORM.
package requestrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"

	"github.com/google/uuid"
)

// RequestDTO is the delivery_requests row. Status and vehicle class are stored as their
// numeric values; price and ETA are written once on insert.
type RequestDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Pickup       PointDTO   `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff      PointDTO   `gorm:"embedded;embeddedPrefix:dropoff_"`
	WeightKg     float64    `gorm:"not null"`
	VehicleClass int        `gorm:"type:smallint;not null"`
	DistanceKm   float64    `gorm:"not null"`
	Price        float64    `gorm:"type:numeric(12,2);not null"`
	EtaMinutes   int        `gorm:"not null"`
	Status       int        `gorm:"type:smallint;not null;index:idx_requests_status_created,priority:1"`
	DriverID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime:false;not null;index:idx_requests_status_created,priority:2"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime:false;not null"`
}

func (RequestDTO) TableName() string {
	return "delivery_requests"
}

// PointDTO is an embedded coordinate pair.
type PointDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

func fromDomain(r *request.DeliveryRequest) RequestDTO {
	return RequestDTO{
		ID:           r.ID().Bytes(),
		Pickup:       pointFromDomain(r.Pickup()),
		Dropoff:      pointFromDomain(r.Dropoff()),
		WeightKg:     r.WeightKg(),
		VehicleClass: int(r.VehicleClass()),
		DistanceKm:   r.Quote().DistanceKm,
		Price:        r.Price(),
		EtaMinutes:   r.EtaMinutes(),
		Status:       int(r.Status()),
		DriverID:     driverIDFromDomain(r.DriverID()),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}

func toDomain(dto RequestDTO) (*request.DeliveryRequest, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, idErr := kernel.UUIDFromGoogle(*dto.DriverID)
		if idErr != nil {
			return nil, idErr
		}
		driverID = &dID
	}

	pickup, err := kernel.NewGeoPoint(dto.Pickup.Latitude, dto.Pickup.Longitude)
	if err != nil {
		return nil, err
	}
	dropoff, err := kernel.NewGeoPoint(dto.Dropoff.Latitude, dto.Dropoff.Longitude)
	if err != nil {
		return nil, err
	}

	return request.RestoreDeliveryRequest(
		id, pickup, dropoff, dto.WeightKg, kernel.VehicleClass(dto.VehicleClass),
		request.Quote{DistanceKm: dto.DistanceKm, Price: dto.Price, EtaMinutes: dto.EtaMinutes},
		request.Status(dto.Status), driverID, dto.CreatedAt, dto.UpdatedAt,
	)
}

func pointFromDomain(p kernel.GeoPoint) PointDTO {
	return PointDTO{Latitude: p.Latitude(), Longitude: p.Longitude()}
}

func driverIDFromDomain(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}
