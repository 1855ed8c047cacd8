package simfile

import (
	"fmt"

	"github.com/ptlab/ptsim/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version      int             `toml:"version" yaml:"version"`
	Source       string          `toml:"source" yaml:"source"`
	SourceDigest string          `toml:"source_digest,omitempty" yaml:"source_digest,omitempty"`
	RunID        string          `toml:"run_id,omitempty" yaml:"run_id,omitempty"`
	GeneratedAt  string          `toml:"generated_at,omitempty" yaml:"generated_at,omitempty"`
	Channels     []channelSchema `toml:"channels" yaml:"channels"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("%w: %d (current %d)", domain.ErrUnsupportedSchemaVersion, s.Version, currentSchemaVersion)
	}

	return nil
}

type channelSchema struct {
	ChannelID    int              `toml:"channel_id" yaml:"channel_id"`
	Orphan       bool             `toml:"orphan" yaml:"orphan"`
	OpenedAt     int              `toml:"opened_at" yaml:"opened_at"`
	ClosedAt     int              `toml:"closed_at" yaml:"closed_at"`
	Protocol     string           `toml:"protocol,omitempty" yaml:"protocol,omitempty"`
	ProtocolID   int              `toml:"protocol_id,omitempty" yaml:"protocol_id,omitempty"`
	BaudRate     int              `toml:"baud_rate,omitempty" yaml:"baud_rate,omitempty"`
	ConnectFlags uint32           `toml:"connect_flags" yaml:"connect_flags"`
	Filters      []filterSchema   `toml:"filters,omitempty" yaml:"filters,omitempty"`
	Exchanges    []exchangeSchema `toml:"exchanges,omitempty" yaml:"exchanges,omitempty"`
	Unsolicited  []refSchema      `toml:"unsolicited,omitempty" yaml:"unsolicited,omitempty"`
}

type filterSchema struct {
	ID          int    `toml:"id" yaml:"id"`
	Type        string `toml:"type,omitempty" yaml:"type,omitempty"`
	Mask        string `toml:"mask,omitempty" yaml:"mask,omitempty"`
	Pattern     string `toml:"pattern,omitempty" yaml:"pattern,omitempty"`
	FlowControl string `toml:"flow_control,omitempty" yaml:"flow_control,omitempty"`
	SourceIndex int    `toml:"source_index" yaml:"source_index"`
}

type exchangeSchema struct {
	Request   refSchema   `toml:"request" yaml:"request"`
	Responses []refSchema `toml:"responses,omitempty" yaml:"responses,omitempty"`
}

type refSchema struct {
	Index    int      `toml:"index" yaml:"index"`
	Messages []string `toml:"messages,omitempty" yaml:"messages,omitempty"`
}
