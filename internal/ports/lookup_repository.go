package ports

import (
	"context"

	"github.com/emiliopalmerini/herdstats/internal/domain"
)

// LookupRepository serves the option lists of the filter widgets.
type LookupRepository interface {
	Breeds(ctx context.Context) ([]domain.Breed, error)
	Years(ctx context.Context) ([]int, error)
	Areas(ctx context.Context) ([]domain.Area, error)
}
