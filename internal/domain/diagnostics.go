package domain

// FieldMiss records a field whose text was found but could not be parsed.
type FieldMiss struct {
	Index int
	Field FieldName
	Raw   string
}

// Diagnostics collects the soft errors of one pipeline run. None of them stop
// the run; they let callers spot noisy captures and capture gaps.
type Diagnostics struct {
	Unclassified []int
	Orphans      []int
	FieldMisses  []FieldMiss
}

func (d Diagnostics) Empty() bool {
	return len(d.Unclassified) == 0 && len(d.Orphans) == 0 && len(d.FieldMisses) == 0
}
