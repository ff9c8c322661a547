package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
)

type driverRecord struct {
	ID              string   `json:"id"`
	Lat             *float64 `json:"lat"`
	Lon             *float64 `json:"lon"`
	Available       bool     `json:"available"`
	VehicleClass    string   `json:"vehicle_class"`
	Rating          float64  `json:"rating"`
	TotalDeliveries int      `json:"total_deliveries"`
}

// LoadDriversFile reads a JSON array of drivers. A driver without lat/lon has no known
// location and is never a candidate.
func LoadDriversFile(path string) ([]*driver.Driver, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []driverRecord
	if err = json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	drivers := make([]*driver.Driver, 0, len(records))
	for i, rec := range records {
		d, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("driver #%d in %s: %w", i, path, err)
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}

func (r driverRecord) toDomain() (*driver.Driver, error) {
	id, err := kernel.UUIDFromString(r.ID)
	if err != nil {
		return nil, err
	}
	class, err := kernel.ParseVehicleClass(r.VehicleClass)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	switch {
	case r.Lat != nil && r.Lon != nil:
		p, err := kernel.NewGeoPoint(*r.Lat, *r.Lon)
		if err != nil {
			return nil, err
		}
		location = &p
	case r.Lat != nil || r.Lon != nil:
		return nil, errors.New("lat and lon must be given together")
	}

	return driver.NewDriver(id, location, r.Available, class, r.Rating, r.TotalDeliveries)
}
