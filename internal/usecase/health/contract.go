package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ProviderChecker checks hosted model availability.
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
}

// CorpusCounter reports how many records are loaded.
type CorpusCounter interface {
	Len() int
}
