package expression

import (
	"github.com/ptlab/ptsim/internal/domain"
	"github.com/ptlab/ptsim/internal/segment"
)

// Parse segments text and builds one expression per block, in log order.
func Parse(source, text string) (domain.ExpressionSet, domain.Diagnostics) {
	var (
		expressions []domain.Expression
		diagnostics domain.Diagnostics
	)

	for block := range segment.Blocks(text) {
		expr, misses := Build(len(expressions), block)
		expressions = append(expressions, expr)

		if expr.Command == domain.CommandUnclassified {
			diagnostics.Unclassified = append(diagnostics.Unclassified, expr.Index)
		}
		diagnostics.FieldMisses = append(diagnostics.FieldMisses, misses...)
	}

	return domain.NewExpressionSet(source, expressions), diagnostics
}
