package expression

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ptlab/ptsim/internal/domain"
)

// ExchangeExt is the file extension of the expression exchange format.
const ExchangeExt = ".ptExp"

// Encode writes set in the exchange format: each expression's raw lines
// verbatim, with one blank line between expressions.
func Encode(w io.Writer, set domain.ExpressionSet) error {
	bw := bufio.NewWriter(w)
	for i, expr := range set.All() {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return fmt.Errorf("write expression separator: %w", err)
			}
		}
		for _, line := range expr.RawText {
			if _, err := bw.WriteString(line); err != nil {
				return fmt.Errorf("write expression %d: %w", expr.Index, err)
			}
			if err := bw.WriteByte('\n'); err != nil {
				return fmt.Errorf("write expression %d: %w", expr.Index, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush exchange: %w", err)
	}
	return nil
}

// Decode reads an exchange file back into an expression set. The exchange
// format is itself a valid trace, so decoding is a plain parse.
func Decode(source string, r io.Reader) (domain.ExpressionSet, domain.Diagnostics, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.ExpressionSet{}, domain.Diagnostics{}, fmt.Errorf("read exchange: %w", err)
	}

	set, diagnostics := Parse(source, string(data))
	return set, diagnostics, nil
}
