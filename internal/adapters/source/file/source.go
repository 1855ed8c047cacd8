package file

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ptlab/ptsim/internal/adapters/fsutil"
	"github.com/ptlab/ptsim/internal/domain"
	"github.com/ptlab/ptsim/internal/ports"
	"golang.org/x/crypto/blake2b"
)

const digestPrefix = "blake2b-256:"

type Source struct{}

var _ ports.LogSource = Source{}

func NewSource() Source {
	return Source{}
}

func (Source) Name(path string) string {
	return fsutil.Stem(path)
}

func (s Source) Read(ctx context.Context, path string) (domain.SourceLog, error) {
	if err := ctx.Err(); err != nil {
		return domain.SourceLog{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SourceLog{}, fmt.Errorf("%w: read %s: %w", domain.ErrSourceUnreadable, path, err)
	}

	return domain.SourceLog{
		Name:   s.Name(path),
		Path:   filepath.Clean(path),
		Text:   string(data),
		Digest: Digest(data),
	}, nil
}

// Digest returns the content digest stamped into simulation files.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return digestPrefix + hex.EncodeToString(sum[:])
}
