package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the service cannot answer searches.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db         DBPinger
	catalog    CatalogState
	recognizer RecognizerChecker
}

// New creates a Service. recognizer can be nil.
func New(db DBPinger, catalog CatalogState, recognizer RecognizerChecker) *Service {
	return &Service{db: db, catalog: catalog, recognizer: recognizer}
}

// Check runs health checks against all components. A catalog that never
// loaded makes the service unhealthy; any other failure only degrades it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	if s.catalog.LoadedAt().IsZero() {
		checks["catalog"] = CheckError
	} else {
		checks["catalog"] = CheckOK
	}

	// The recognizer is optional: its failure degrades location detection only.
	if s.recognizer != nil {
		if err := s.recognizer.HealthCheck(ctx); err != nil {
			checks["recognizer"] = CheckError
		} else {
			checks["recognizer"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks["catalog"] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
