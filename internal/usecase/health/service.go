package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component failed; search still works.
	Degraded Status = "degraded"
	// Unhealthy indicates the corpus is unusable.
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
	corpus    CorpusCounter
	db        DBPinger
	embedding ProviderChecker
	answer    ProviderChecker
}

// New creates a Service. db, embedding and answer can be nil.
func New(corpus CorpusCounter, db DBPinger, embedding, answer ProviderChecker) *Service {
	return &Service{corpus: corpus, db: db, embedding: embedding, answer: answer}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	status := Healthy
	if s.corpus == nil || s.corpus.Len() == 0 {
		checks["corpus"] = CheckError
		status = Unhealthy
	} else {
		checks["corpus"] = CheckOK
	}

	if s.db != nil {
		checks["database"] = result(s.db.Ping(ctx))
	}
	if s.embedding != nil {
		checks["embedding"] = result(s.embedding.HealthCheck(ctx))
	}
	if s.answer != nil {
		checks["answer"] = result(s.answer.HealthCheck(ctx))
	}

	if status == Healthy {
		for _, v := range checks {
			if v == CheckError {
				status = Degraded
				break
			}
		}
	}

	return Report{Status: status, Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
