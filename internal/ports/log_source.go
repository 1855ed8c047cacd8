package ports

import (
	"context"

	"github.com/ptlab/ptsim/internal/domain"
)

type LogSource interface {
	Read(ctx context.Context, path string) (domain.SourceLog, error)
	// Name returns the artifact name Read would give the log at path.
	Name(path string) string
}
