package ports

import (
	"context"

	"github.com/ptlab/ptsim/internal/domain"
)

// ExpressionStore persists expression sets in the .ptExp exchange format.
type ExpressionStore interface {
	Save(ctx context.Context, dir, name string, set domain.ExpressionSet) (string, error)
	Load(ctx context.Context, path string) (domain.ExpressionSet, error)
}
