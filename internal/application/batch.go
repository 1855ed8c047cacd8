package application

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/ptlab/ptsim/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ProcessBatch runs ProcessFile for every source with at most cmd.Workers
// pipelines in flight. One file's failure never stops the others.
// Cancellation is checked before each file starts; a file already running is
// allowed to finish. A source whose artifact name was already claimed by an
// earlier source fails without being read. Results are returned in input
// order.
func (s *Service) ProcessBatch(ctx context.Context, cmd BatchCommand) []Result {
	workers := cmd.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	runID := s.ids.NewID()
	results := make([]Result, len(cmd.SourcePaths))

	var g errgroup.Group
	g.SetLimit(workers)

	finish := func(i int, result Result) {
		results[i] = result
		if cmd.OnResult != nil {
			cmd.OnResult(result)
		}
	}

	owners := make(map[string]string, len(cmd.SourcePaths))
	for i, path := range cmd.SourcePaths {
		if err := ctx.Err(); err != nil {
			finish(i, cancelled(path, err))
			continue
		}

		// Sources sharing an artifact name would overwrite each other's output.
		name := s.source.Name(path)
		if owner, taken := owners[name]; taken {
			result, _ := s.fail(Result{SourcePath: path, RunID: runID}, s.clock.Now(),
				fmt.Errorf("%w: %q is already produced by %s", domain.ErrArtifactUnwritable, name, owner))
			finish(i, result)
			continue
		}
		owners[name] = path

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				finish(i, cancelled(path, err))
				return nil
			}

			result, _ := s.ProcessFile(ctx, ProcessCommand{
				SourcePath: path,
				OutputDir:  cmd.OutputDir,
				RunID:      runID,
			})
			finish(i, result)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// BatchError joins the errors of every failed result, or returns nil.
func BatchError(results []Result) error {
	var errs []error
	for _, result := range results {
		if result.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", result.SourcePath, result.Err))
		}
	}
	return errors.Join(errs...)
}

func cancelled(path string, err error) Result {
	return Result{
		SourcePath: path,
		Err:        err,
		Error:      err.Error(),
	}
}
