package http

import (
	"errors"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toRoute(pickup, dropoff servers.GeoPoint) (kernel.GeoPoint, kernel.GeoPoint, error) {
	from, fromErr := kernel.NewGeoPoint(pickup.Lat, pickup.Lon)
	to, toErr := kernel.NewGeoPoint(dropoff.Lat, dropoff.Lon)
	if err := errors.Join(fromErr, toErr); err != nil {
		return kernel.GeoPoint{}, kernel.GeoPoint{}, err
	}
	return from, to, nil
}

func toGeoPoint(p kernel.GeoPoint) servers.GeoPoint {
	return servers.GeoPoint{Lat: p.Latitude(), Lon: p.Longitude()}
}

func toDeliveryRequest(v queries.RequestView) servers.DeliveryRequest {
	var driverID *openapi_types.UUID
	if v.DriverID != nil {
		id := v.DriverID.Bytes()
		driverID = &id
	}

	return servers.DeliveryRequest{
		Id:              v.ID.Bytes(),
		Pickup:          toGeoPoint(v.Pickup),
		Dropoff:         toGeoPoint(v.Dropoff),
		PackageWeightKg: v.WeightKg,
		VehicleClass:    servers.VehicleClass(v.VehicleClass.String()),
		DistanceKm:      v.DistanceKm,
		Price:           v.Price,
		EtaMinutes:      v.EtaMinutes,
		Status:          servers.RequestStatus(v.Status.String()),
		DriverId:        driverID,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func valueOrZero[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
