// Package driverrepo reads the driver directory from the drivers table. The table is
// owned by the driver registry; this service only writes it through Upsert, which exists
// for seeding and tests.
package driverrepo

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO is the drivers row. A driver without a known location has NULL coordinates.
type DriverDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Latitude        *float64  `gorm:"type:double precision"`
	Longitude       *float64  `gorm:"type:double precision"`
	Available       bool      `gorm:"not null;index"`
	VehicleClass    int       `gorm:"type:smallint;not null"`
	Rating          float64   `gorm:"not null"`
	TotalDeliveries int       `gorm:"not null"`
	UpdatedAt       time.Time
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	dto := DriverDTO{
		ID:              d.ID().Bytes(),
		Available:       d.IsAvailable(),
		VehicleClass:    int(d.VehicleClass()),
		Rating:          d.Rating(),
		TotalDeliveries: d.TotalDeliveries(),
	}
	if loc, ok := d.Location(); ok {
		lat, lon := loc.Latitude(), loc.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}
	return dto
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, pErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pErr != nil {
			return nil, pErr
		}
		location = &p
	}

	return driver.NewDriver(id, location, dto.Available, kernel.VehicleClass(dto.VehicleClass),
		dto.Rating, dto.TotalDeliveries)
}
