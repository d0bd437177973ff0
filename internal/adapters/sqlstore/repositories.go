package sqlstore

import (
	"github.com/emiliopalmerini/herdstats/internal/infrastructure/database"
	"github.com/emiliopalmerini/herdstats/internal/ports"
)

// Repositories holds the sqlstore implementations as port interfaces.
type Repositories struct {
	Production ports.ProductionRepository
	Lookups    ports.LookupRepository
}

// NewRepositories creates all repositories over one database client.
func NewRepositories(client *database.Client, metrics ports.MetricsExporter) (*Repositories, error) {
	production, err := NewProductionRepository(client, metrics)
	if err != nil {
		return nil, err
	}
	lookups, err := NewLookupRepository(client, metrics)
	if err != nil {
		return nil, err
	}
	return &Repositories{Production: production, Lookups: lookups}, nil
}
