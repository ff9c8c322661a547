// Package metrics holds the prometheus collectors of the dispatch service.
package metrics

import (
	"strconv"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

// Lifecycle implements ports.LifecycleMetrics on top of prometheus counters and also
// carries the HTTP and job collectors so a single registry serves /metrics.
type Lifecycle struct {
	requestsCreated     *prometheus.CounterVec
	statusChanges       *prometheus.CounterVec
	assignmentConflicts *prometheus.CounterVec
	jobRuns             *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	directorySize       prometheus.Gauge
}

var _ ports.LifecycleMetrics = (*Lifecycle)(nil)

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Lifecycle, error) {
	m := &Lifecycle{
		requestsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_requests_created_total",
			Help: "Delivery requests created, by vehicle class",
		}, []string{"vehicle_class"}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_status_changes_total",
			Help: "Stored delivery request status changes",
		}, []string{"from", "to"}),
		assignmentConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_assignment_conflicts_total",
			Help: "Accept/assign attempts that lost to a concurrent change",
		}, []string{"operation"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_job_runs_total",
			Help: "Scheduled job runs, by job and outcome",
		}, []string{"job", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		directorySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dispatch_directory_available_drivers",
			Help: "Available drivers in the last directory snapshot",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.requestsCreated,
		m.statusChanges,
		m.assignmentConflicts,
		m.jobRuns,
		m.httpRequests,
		m.httpDuration,
		m.directorySize,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Lifecycle) RequestCreated(class kernel.VehicleClass) {
	m.requestsCreated.WithLabelValues(class.String()).Inc()
}

func (m *Lifecycle) StatusChanged(from, to request.Status) {
	m.statusChanges.WithLabelValues(from.String(), to.String()).Inc()
}

func (m *Lifecycle) AssignmentConflict(operation string) {
	m.assignmentConflicts.WithLabelValues(operation).Inc()
}

// JobRun counts one scheduled run; outcome is "ok" or "error".
func (m *Lifecycle) JobRun(job string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.jobRuns.WithLabelValues(job, outcome).Inc()
}

// DirectorySnapshot records the size of the freshly loaded driver snapshot.
func (m *Lifecycle) DirectorySnapshot(available int) {
	m.directorySize.Set(float64(available))
}

// HTTPRequest records one served request. path must be the route pattern, not the raw URL.
func (m *Lifecycle) HTTPRequest(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	m.httpDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}
