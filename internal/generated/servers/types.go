// Package servers holds the HTTP contract of the dispatch API: the OpenAPI document,
// its request/response types and the echo handler wrappers that bind parameters.
// It follows the layout oapi-codegen produces for echo servers.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for RequestStatus.
const (
	Accepted  RequestStatus = "accepted"
	Cancelled RequestStatus = "cancelled"
	Delivered RequestStatus = "delivered"
	InTransit RequestStatus = "in_transit"
	PickedUp  RequestStatus = "picked_up"
	Pending   RequestStatus = "pending"
)

// Defines values for VehicleClass.
const (
	Car        VehicleClass = "car"
	Motorcycle VehicleClass = "motorcycle"
	Truck      VehicleClass = "truck"
)

// Candidate defines model for Candidate.
type Candidate struct {
	DistanceKm      float64            `json:"distance_km"`
	DriverId        openapi_types.UUID `json:"driver_id"`
	Rating          float64            `json:"rating"`
	TotalDeliveries int                `json:"total_deliveries"`
	VehicleClass    VehicleClass       `json:"vehicle_class"`
}

// DeliveryRequest defines model for DeliveryRequest.
type DeliveryRequest struct {
	CreatedAt       time.Time           `json:"created_at"`
	DistanceKm      float64             `json:"distance_km"`
	DriverId        *openapi_types.UUID `json:"driver_id,omitempty"`
	Dropoff         GeoPoint            `json:"dropoff"`
	EtaMinutes      int                 `json:"eta_minutes"`
	Id              openapi_types.UUID  `json:"id"`
	PackageWeightKg float64             `json:"package_weight_kg"`
	Pickup          GeoPoint            `json:"pickup"`
	Price           float64             `json:"price"`
	Status          RequestStatus       `json:"status"`
	UpdatedAt       time.Time           `json:"updated_at"`
	VehicleClass    VehicleClass        `json:"vehicle_class"`
}

// DriverAssignment defines model for DriverAssignment.
type DriverAssignment struct {
	DriverId openapi_types.UUID `json:"driver_id"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Estimate defines model for Estimate.
type Estimate struct {
	DistanceKm float64 `json:"distance_km"`
	EtaMinutes int     `json:"eta_minutes"`
	Price      float64 `json:"price"`
}

// EstimateRequest defines model for EstimateRequest.
type EstimateRequest struct {
	Dropoff         GeoPoint     `json:"dropoff"`
	PackageWeightKg float64      `json:"package_weight_kg"`
	Pickup          GeoPoint     `json:"pickup"`
	VehicleClass    VehicleClass `json:"vehicle_class"`
}

// GeoPoint defines model for GeoPoint.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewDeliveryRequest defines model for NewDeliveryRequest.
type NewDeliveryRequest struct {
	Dropoff GeoPoint `json:"dropoff"`

	// Id Client-chosen id; generated when absent
	Id              *openapi_types.UUID `json:"id,omitempty"`
	PackageWeightKg float64             `json:"package_weight_kg"`
	Pickup          GeoPoint            `json:"pickup"`
	VehicleClass    VehicleClass        `json:"vehicle_class"`
}

// RequestStatus defines model for RequestStatus.
type RequestStatus string

// StatusTransition defines model for StatusTransition.
type StatusTransition struct {
	Status RequestStatus `json:"status"`
}

// VehicleClass defines model for VehicleClass.
type VehicleClass string

// RequestID defines model for RequestID.
type RequestID = openapi_types.UUID

// FindCandidatesParams defines parameters for FindCandidates.
type FindCandidatesParams struct {
	Lat          float64       `form:"lat" json:"lat"`
	Lon          float64       `form:"lon" json:"lon"`
	RadiusKm     *float64      `form:"radius_km,omitempty" json:"radius_km,omitempty"`
	VehicleClass *VehicleClass `form:"vehicle_class,omitempty" json:"vehicle_class,omitempty"`
	Limit        *int          `form:"limit,omitempty" json:"limit,omitempty"`
}

// ListRequestsParams defines parameters for ListRequests.
type ListRequestsParams struct {
	Status        *[]RequestStatus    `form:"status,omitempty" json:"status,omitempty"`
	DriverId      *openapi_types.UUID `form:"driver_id,omitempty" json:"driver_id,omitempty"`
	CreatedBefore *time.Time          `form:"created_before,omitempty" json:"created_before,omitempty"`
	Limit         *int                `form:"limit,omitempty" json:"limit,omitempty"`
}

// EstimateJSONRequestBody defines body for Estimate for application/json ContentType.
type EstimateJSONRequestBody = EstimateRequest

// CreateRequestJSONRequestBody defines body for CreateRequest for application/json ContentType.
type CreateRequestJSONRequestBody = NewDeliveryRequest

// AcceptRequestJSONRequestBody defines body for AcceptRequest for application/json ContentType.
type AcceptRequestJSONRequestBody = DriverAssignment

// AssignDriverJSONRequestBody defines body for AssignDriver for application/json ContentType.
type AssignDriverJSONRequestBody = DriverAssignment

// TransitionRequestJSONRequestBody defines body for TransitionRequest for application/json ContentType.
type TransitionRequestJSONRequestBody = StatusTransition
