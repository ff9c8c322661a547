package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Price and ETA of a route without creating a request
	// (POST /api/v1/estimates)
	Estimate(ctx echo.Context) error
	// Available drivers near a pickup point, nearest first
	// (GET /api/v1/candidates)
	FindCandidates(ctx echo.Context, params FindCandidatesParams) error
	// Delivery requests, oldest first
	// (GET /api/v1/requests)
	ListRequests(ctx echo.Context, params ListRequestsParams) error
	// Create a pending delivery request
	// (POST /api/v1/requests)
	CreateRequest(ctx echo.Context) error

	// (GET /api/v1/requests/{id})
	GetRequest(ctx echo.Context, id RequestID) error
	// A driver accepts a pending request; exactly one concurrent acceptance wins
	// (POST /api/v1/requests/{id}/accept)
	AcceptRequest(ctx echo.Context, id RequestID) error
	// An operator assigns a driver to a pending request
	// (POST /api/v1/requests/{id}/assign)
	AssignDriver(ctx echo.Context, id RequestID) error
	// Move a request along the lifecycle graph
	// (POST /api/v1/requests/{id}/transition)
	TransitionRequest(ctx echo.Context, id RequestID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// Estimate converts echo context to params.
func (w *ServerInterfaceWrapper) Estimate(ctx echo.Context) error {
	return w.Handler.Estimate(ctx)
}

// FindCandidates converts echo context to params.
func (w *ServerInterfaceWrapper) FindCandidates(ctx echo.Context) error {
	var params FindCandidatesParams

	if err := runtime.BindQueryParameter("form", true, true, "lat", ctx.QueryParams(), &params.Lat); err != nil {
		return badParameter("lat", err)
	}
	if err := runtime.BindQueryParameter("form", true, true, "lon", ctx.QueryParams(), &params.Lon); err != nil {
		return badParameter("lon", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "radius_km", ctx.QueryParams(), &params.RadiusKm); err != nil {
		return badParameter("radius_km", err)
	}
	if err := runtime.BindQueryParameter(
		"form", true, false, "vehicle_class", ctx.QueryParams(), &params.VehicleClass); err != nil {
		return badParameter("vehicle_class", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return badParameter("limit", err)
	}

	return w.Handler.FindCandidates(ctx, params)
}

// ListRequests converts echo context to params.
func (w *ServerInterfaceWrapper) ListRequests(ctx echo.Context) error {
	var params ListRequestsParams

	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return badParameter("status", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "driver_id", ctx.QueryParams(), &params.DriverId); err != nil {
		return badParameter("driver_id", err)
	}
	if err := runtime.BindQueryParameter(
		"form", true, false, "created_before", ctx.QueryParams(), &params.CreatedBefore); err != nil {
		return badParameter("created_before", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit); err != nil {
		return badParameter("limit", err)
	}

	return w.Handler.ListRequests(ctx, params)
}

// CreateRequest converts echo context to params.
func (w *ServerInterfaceWrapper) CreateRequest(ctx echo.Context) error {
	return w.Handler.CreateRequest(ctx)
}

// GetRequest converts echo context to params.
func (w *ServerInterfaceWrapper) GetRequest(ctx echo.Context) error {
	id, err := bindRequestID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetRequest(ctx, id)
}

// AcceptRequest converts echo context to params.
func (w *ServerInterfaceWrapper) AcceptRequest(ctx echo.Context) error {
	id, err := bindRequestID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AcceptRequest(ctx, id)
}

// AssignDriver converts echo context to params.
func (w *ServerInterfaceWrapper) AssignDriver(ctx echo.Context) error {
	id, err := bindRequestID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AssignDriver(ctx, id)
}

// TransitionRequest converts echo context to params.
func (w *ServerInterfaceWrapper) TransitionRequest(ctx echo.Context) error {
	id, err := bindRequestID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.TransitionRequest(ctx, id)
}

func bindRequestID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, badParameter("id", err)
	}
	return id, nil
}

func badParameter(name string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
}

// EchoRouter is the subset of echo.Echo / echo.Group used to register routes.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths, so
// that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/estimates", wrapper.Estimate)
	router.GET(baseURL+"/api/v1/candidates", wrapper.FindCandidates)
	router.GET(baseURL+"/api/v1/requests", wrapper.ListRequests)
	router.POST(baseURL+"/api/v1/requests", wrapper.CreateRequest)
	router.GET(baseURL+"/api/v1/requests/:id", wrapper.GetRequest)
	router.POST(baseURL+"/api/v1/requests/:id/accept", wrapper.AcceptRequest)
	router.POST(baseURL+"/api/v1/requests/:id/assign", wrapper.AssignDriver)
	router.POST(baseURL+"/api/v1/requests/:id/transition", wrapper.TransitionRequest)
}
