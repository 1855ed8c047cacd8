package ports

import (
	"context"

	"github.com/ptlab/ptsim/internal/domain"
)

type SimulationRepository interface {
	Save(ctx context.Context, dir, name string, file domain.SimulationFile) (string, error)
	Load(ctx context.Context, path string) (domain.SimulationFile, error)
}
