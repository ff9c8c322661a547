package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/directory"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/requestrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type eventPublisher interface {
	ports.EventPublisher
	Close() error
}

// CompositionRoot owns every long-lived dependency and builds handlers, the HTTP server
// and the jobs from them.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	requests  ports.RequestRepository
	directory *directory.CachedDirectory
	publisher eventPublisher
	registry  *prometheus.Registry
	metrics   *metrics.Lifecycle

	estimator services.Estimator
	locator   services.DriverLocator

	closers []func() error
}

func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:       cfg,
		logger:    logger,
		estimator: services.NewEstimator(),
		locator:   services.NewDriverLocator(),
	}

	c.registry = prometheus.NewRegistry()
	c.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(c.registry)
	if err != nil {
		return nil, err
	}
	c.metrics = m

	var seed []*driver.Driver
	if cfg.DriversFile != "" {
		if seed, err = LoadDriversFile(cfg.DriversFile); err != nil {
			return nil, err
		}
	}

	var source ports.DriverDirectory
	switch cfg.Store {
	case StoreMemory:
		c.requests = memory.NewRequestStore()
		source = memory.NewDriverDirectory(seed...)
	case StorePostgres:
		if source, err = c.openPostgres(ctx, seed); err != nil {
			return nil, errors.Join(err, c.Close())
		}
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
	c.directory = directory.NewCachedDirectory(source, cfg.DirectoryRefresh, cfg.StoreTimeout)

	if cfg.KafkaEnabled() {
		c.publisher = kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaStatusTopic, logger)
	} else {
		c.publisher = kafka.NewNopPublisher(logger)
	}
	c.closers = append(c.closers, c.publisher.Close)

	logger.InfoContext(ctx, "Composition root ready",
		"store", cfg.Store, "kafka", cfg.KafkaEnabled(), "seeded_drivers", len(seed))
	return c, nil
}

func (c *CompositionRoot) openPostgres(ctx context.Context, seed []*driver.Driver) (ports.DriverDirectory, error) {
	db, err := postgres.Open(c.cfg.ConnectionSettings(), c.logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, sqlDB.Close)

	if err = postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	c.requests = requestrepo.NewGormRequestRepository(db, c.cfg.StoreTimeout)
	drivers := driverrepo.NewGormDriverDirectory(db)
	for _, d := range seed {
		if err = drivers.Upsert(ctx, d); err != nil {
			return nil, fmt.Errorf("seed driver %s: %w", d.ID(), err)
		}
	}
	return drivers, nil
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.requests, c.estimator, c.publisher, c.metrics)
}

func (c *CompositionRoot) CreateAcceptRequestCommandHandler() commands.AcceptRequestCommandHandler {
	return commands.NewAcceptRequestCommandHandler(c.requests, c.directory, c.publisher, c.metrics)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.requests, c.directory, c.publisher, c.metrics)
}

func (c *CompositionRoot) CreateTransitionRequestCommandHandler() commands.TransitionRequestCommandHandler {
	return commands.NewTransitionRequestCommandHandler(c.requests, c.publisher, c.metrics)
}

func (c *CompositionRoot) CreateExpireStaleRequestsCommandHandler() commands.ExpireStaleRequestsCommandHandler {
	return commands.NewExpireStaleRequestsCommandHandler(c.requests, c.publisher, c.metrics)
}

func (c *CompositionRoot) CreateEstimateQueryHandler() queries.EstimateQueryHandler {
	return queries.NewEstimateQueryHandler(c.estimator)
}

func (c *CompositionRoot) CreateFindCandidatesQueryHandler() queries.FindCandidatesQueryHandler {
	return queries.NewFindCandidatesQueryHandler(c.directory, c.locator)
}

func (c *CompositionRoot) CreateGetRequestQueryHandler() queries.GetRequestQueryHandler {
	return queries.NewGetRequestQueryHandler(c.requests)
}

func (c *CompositionRoot) CreateListRequestsQueryHandler() queries.ListRequestsQueryHandler {
	return queries.NewListRequestsQueryHandler(c.requests)
}

// CreateHTTPServer builds the echo instance serving the API, /health and /metrics.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateRequest:     c.CreateCreateRequestCommandHandler(),
		AcceptRequest:     c.CreateAcceptRequestCommandHandler(),
		AssignDriver:      c.CreateAssignDriverCommandHandler(),
		TransitionRequest: c.CreateTransitionRequestCommandHandler(),
		Estimate:          c.CreateEstimateQueryHandler(),
		FindCandidates:    c.CreateFindCandidatesQueryHandler(),
		GetRequest:        c.CreateGetRequestQueryHandler(),
		ListRequests:      c.CreateListRequestsQueryHandler(),
	})
	return httpin.NewRouter(server, httpin.RouterOptions{
		Logger:   c.logger,
		Observer: c.metrics,
		Gatherer: c.registry,
	})
}

// CreateJobManager wires the directory refresh and request expiry jobs.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	refresh, err := jobs.NewDirectoryRefreshJob(c.directory, c.cfg.DirectoryRefresh, c.metrics, c.logger)
	if err != nil {
		return nil, err
	}
	expiry, err := jobs.NewRequestExpiryJob(
		c.CreateExpireStaleRequestsCommandHandler(),
		c.cfg.RequestTTL,
		c.cfg.ExpiryInterval,
		c.cfg.ExpiryBatchSize,
		c.metrics,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(refresh, expiry), nil
}

// Close releases the publisher and the database pool, in reverse order of creation.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}
