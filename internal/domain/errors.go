package domain

import "errors"

var (
	ErrSourceUnreadable         = errors.New("source log unreadable")
	ErrArtifactUnwritable       = errors.New("artifact unwritable")
	ErrSimulationNotFound       = errors.New("simulation file not found")
	ErrUnsupportedFormat        = errors.New("unsupported simulation format")
	ErrUnsupportedSchemaVersion = errors.New("unsupported simulation schema version")
	ErrInvalidArtifactName      = errors.New("invalid artifact name")
)
