package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ptlab/ptsim/internal/adapters/fsutil"
	"github.com/ptlab/ptsim/internal/domain"
	"github.com/ptlab/ptsim/internal/expression"
	"github.com/ptlab/ptsim/internal/ports"
)

// Store keeps expression sets as .ptExp files.
type Store struct{}

var _ ports.ExpressionStore = Store{}

func NewStore() Store {
	return Store{}
}

func (Store) Save(ctx context.Context, dir, name string, set domain.ExpressionSet) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := fsutil.ArtifactPath(dir, name, expression.ExchangeExt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidArtifactName, err)
	}

	var buf bytes.Buffer
	if err := expression.Encode(&buf, set); err != nil {
		return "", fmt.Errorf("encode expressions: %w", err)
	}

	if err := fsutil.WriteFileAtomic(path, buf.Bytes(), fsutil.FileMode); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrArtifactUnwritable, err)
	}

	return path, nil
}

func (Store) Load(ctx context.Context, path string) (domain.ExpressionSet, error) {
	if err := ctx.Err(); err != nil {
		return domain.ExpressionSet{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ExpressionSet{}, fmt.Errorf("%w: %s", domain.ErrSourceUnreadable, path)
		}
		return domain.ExpressionSet{}, fmt.Errorf("%w: open %s: %w", domain.ErrSourceUnreadable, path, err)
	}
	defer f.Close()

	set, _, err := expression.Decode(fsutil.Stem(path), f)
	if err != nil {
		return domain.ExpressionSet{}, fmt.Errorf("%w: %w", domain.ErrSourceUnreadable, err)
	}

	return set, nil
}
