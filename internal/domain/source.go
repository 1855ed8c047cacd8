package domain

// SourceLog is a raw PassThru trace read from disk or handed over by a caller.
type SourceLog struct {
	Name   string
	Path   string
	Text   string
	Digest string
}
