package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createRequestHandler     commands.CreateRequestCommandHandler
	acceptRequestHandler     commands.AcceptRequestCommandHandler
	assignDriverHandler      commands.AssignDriverCommandHandler
	transitionRequestHandler commands.TransitionRequestCommandHandler

	// Query handlers
	estimateHandler       queries.EstimateQueryHandler
	findCandidatesHandler queries.FindCandidatesQueryHandler
	getRequestHandler     queries.GetRequestQueryHandler
	listRequestsHandler   queries.ListRequestsQueryHandler
}

var _ servers.ServerInterface = (*Server)(nil)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateRequest     commands.CreateRequestCommandHandler
	AcceptRequest     commands.AcceptRequestCommandHandler
	AssignDriver      commands.AssignDriverCommandHandler
	TransitionRequest commands.TransitionRequestCommandHandler

	Estimate       queries.EstimateQueryHandler
	FindCandidates queries.FindCandidatesQueryHandler
	GetRequest     queries.GetRequestQueryHandler
	ListRequests   queries.ListRequestsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers) *Server {
	return &Server{
		createRequestHandler:     h.CreateRequest,
		acceptRequestHandler:     h.AcceptRequest,
		assignDriverHandler:      h.AssignDriver,
		transitionRequestHandler: h.TransitionRequest,
		estimateHandler:          h.Estimate,
		findCandidatesHandler:    h.FindCandidates,
		getRequestHandler:        h.GetRequest,
		listRequestsHandler:      h.ListRequests,
	}
}

// Estimate handles POST /api/v1/estimates - quotes a route without storing anything.
func (s *Server) Estimate(ctx echo.Context) error {
	var body servers.EstimateRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	pickup, dropoff, err := toRoute(body.Pickup, body.Dropoff)
	if err != nil {
		return err
	}
	class, err := kernel.ParseVehicleClass(string(body.VehicleClass))
	if err != nil {
		return err
	}

	query, err := queries.NewEstimateQuery(pickup, dropoff, body.PackageWeightKg, class)
	if err != nil {
		return err
	}
	estimate, err := s.estimateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.Estimate{
		DistanceKm: estimate.DistanceKm,
		Price:      estimate.Price,
		EtaMinutes: estimate.EtaMinutes,
	})
}

// FindCandidates handles GET /api/v1/candidates - ranks available drivers around a point.
func (s *Server) FindCandidates(ctx echo.Context, params servers.FindCandidatesParams) error {
	pickup, err := kernel.NewGeoPoint(params.Lat, params.Lon)
	if err != nil {
		return err
	}

	var opts services.SearchOptions
	if params.RadiusKm != nil {
		opts.RadiusKm = *params.RadiusKm
	}
	if params.Limit != nil {
		opts.Limit = *params.Limit
	}
	if params.VehicleClass != nil {
		if opts.VehicleClass, err = kernel.ParseVehicleClass(string(*params.VehicleClass)); err != nil {
			return err
		}
	}

	query, err := queries.NewFindCandidatesQuery(pickup, opts)
	if err != nil {
		return err
	}
	candidates, err := s.findCandidatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]servers.Candidate, len(candidates))
	for i, c := range candidates {
		response[i] = servers.Candidate{
			DriverId:        c.DriverID.Bytes(),
			DistanceKm:      c.DistanceKm,
			VehicleClass:    servers.VehicleClass(c.VehicleClass.String()),
			Rating:          c.Rating,
			TotalDeliveries: c.TotalDeliveries,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateRequest handles POST /api/v1/requests - creates a pending request with its quote.
func (s *Server) CreateRequest(ctx echo.Context) error {
	var body servers.NewDeliveryRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	requestID := kernel.NewUUID()
	if body.Id != nil {
		var err error
		if requestID, err = kernel.UUIDFromGoogle(*body.Id); err != nil {
			return err
		}
	}
	pickup, dropoff, err := toRoute(body.Pickup, body.Dropoff)
	if err != nil {
		return err
	}
	class, err := kernel.ParseVehicleClass(string(body.VehicleClass))
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateRequestCommand(requestID, pickup, dropoff, body.PackageWeightKg, class)
	if err != nil {
		return err
	}
	created, err := s.createRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toDeliveryRequest(queries.NewRequestView(created)))
}

// ListRequests handles GET /api/v1/requests - lists requests oldest first.
func (s *Server) ListRequests(ctx echo.Context, params servers.ListRequestsParams) error {
	var statuses []request.Status
	if params.Status != nil {
		for _, name := range *params.Status {
			status, err := request.ParseStatus(string(name))
			if err != nil {
				return err
			}
			statuses = append(statuses, status)
		}
	}

	var driverID *kernel.UUID
	if params.DriverId != nil {
		id, err := kernel.UUIDFromGoogle(*params.DriverId)
		if err != nil {
			return err
		}
		driverID = &id
	}

	query, err := queries.NewListRequestsQuery(
		statuses, driverID, valueOrZero(params.CreatedBefore), valueOrZero(params.Limit))
	if err != nil {
		return err
	}
	views, err := s.listRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]servers.DeliveryRequest, len(views))
	for i, v := range views {
		response[i] = toDeliveryRequest(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetRequest handles GET /api/v1/requests/{id}.
func (s *Server) GetRequest(ctx echo.Context, id servers.RequestID) error {
	requestID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}

	query, err := queries.NewGetRequestQuery(requestID)
	if err != nil {
		return err
	}
	view, err := s.getRequestHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toDeliveryRequest(view))
}

// AcceptRequest handles POST /api/v1/requests/{id}/accept - a driver takes a pending job.
func (s *Server) AcceptRequest(ctx echo.Context, id servers.RequestID) error {
	requestID, driverID, err := bindAssignment(ctx, id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptRequestCommand(requestID, driverID)
	if err != nil {
		return err
	}
	accepted, err := s.acceptRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toDeliveryRequest(queries.NewRequestView(accepted)))
}

// AssignDriver handles POST /api/v1/requests/{id}/assign - an operator picks the driver.
func (s *Server) AssignDriver(ctx echo.Context, id servers.RequestID) error {
	requestID, driverID, err := bindAssignment(ctx, id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignDriverCommand(requestID, driverID)
	if err != nil {
		return err
	}
	assigned, err := s.assignDriverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toDeliveryRequest(queries.NewRequestView(assigned)))
}

// TransitionRequest handles POST /api/v1/requests/{id}/transition.
func (s *Server) TransitionRequest(ctx echo.Context, id servers.RequestID) error {
	var body servers.StatusTransition
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	requestID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return err
	}
	target, err := request.ParseStatus(string(body.Status))
	if err != nil {
		return err
	}

	cmd, err := commands.NewTransitionRequestCommand(requestID, target)
	if err != nil {
		return err
	}
	updated, err := s.transitionRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toDeliveryRequest(queries.NewRequestView(updated)))
}

func bindAssignment(ctx echo.Context, id servers.RequestID) (kernel.UUID, kernel.UUID, error) {
	var body servers.DriverAssignment
	if err := ctx.Bind(&body); err != nil {
		return kernel.UUID{}, kernel.UUID{}, invalidBody(err)
	}

	requestID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	driverID, err := kernel.UUIDFromGoogle(body.DriverId)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return requestID, driverID, nil
}
