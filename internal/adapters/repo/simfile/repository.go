// Package simfile persists simulation files (.ptSim) for the playback side.
// TOML is the default encoding; YAML is available for tooling that prefers it.
package simfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/ptlab/ptsim/internal/adapters/fsutil"
	"github.com/ptlab/ptsim/internal/domain"
	"github.com/ptlab/ptsim/internal/expression"
	"github.com/ptlab/ptsim/internal/ports"
	"gopkg.in/yaml.v3"
)

const SimulationExt = ".ptSim"

type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatTOML:
		return FormatTOML, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, raw)
	}
}

type Repository struct {
	format Format
}

var _ ports.SimulationRepository = (*Repository)(nil)

func NewRepository(format Format) (*Repository, error) {
	parsed, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}
	return &Repository{format: parsed}, nil
}

func (r *Repository) Save(ctx context.Context, dir, name string, file domain.SimulationFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := fsutil.ArtifactPath(dir, name, SimulationExt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidArtifactName, err)
	}

	encoded := toSchema(file)
	encoded.applyDefaults()

	data, err := r.marshal(encoded)
	if err != nil {
		return "", fmt.Errorf("encode simulation file: %w", err)
	}

	if err := fsutil.WriteFileAtomic(path, data, fsutil.FileMode); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrArtifactUnwritable, err)
	}

	return path, nil
}

func (r *Repository) Load(ctx context.Context, path string) (domain.SimulationFile, error) {
	if err := ctx.Err(); err != nil {
		return domain.SimulationFile{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.SimulationFile{}, fmt.Errorf("%w: %s", domain.ErrSimulationNotFound, path)
		}
		return domain.SimulationFile{}, fmt.Errorf("read simulation file: %w", err)
	}

	file, err := r.unmarshal(data)
	if err != nil {
		return domain.SimulationFile{}, fmt.Errorf("decode simulation file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return domain.SimulationFile{}, err
	}
	file.applyDefaults()

	return fromSchema(file)
}

func (r *Repository) marshal(file fileSchema) ([]byte, error) {
	if r.format == FormatYAML {
		return yaml.Marshal(file)
	}
	return toml.Marshal(file)
}

// unmarshal tries the configured encoding first so files written under the
// other setting still load.
func (r *Repository) unmarshal(data []byte) (fileSchema, error) {
	decoders := []func([]byte, any) error{toml.Unmarshal, yaml.Unmarshal}
	if r.format == FormatYAML {
		decoders[0], decoders[1] = decoders[1], decoders[0]
	}

	var errs []error
	for _, decode := range decoders {
		var file fileSchema
		err := decode(data, &file)
		if err == nil {
			return file, nil
		}
		errs = append(errs, err)
	}
	return fileSchema{}, errors.Join(errs...)
}

func toSchema(file domain.SimulationFile) fileSchema {
	channels := make([]channelSchema, 0, len(file.Channels))
	for _, channel := range file.Channels {
		channels = append(channels, toChannelSchema(channel))
	}

	return fileSchema{
		Source:       file.Source,
		SourceDigest: file.SourceDigest,
		RunID:        file.RunID,
		GeneratedAt:  formatTime(file.GeneratedAt),
		Channels:     channels,
	}
}

func toChannelSchema(channel domain.SimulationChannel) channelSchema {
	encoded := channelSchema{
		ChannelID:    channel.ChannelID,
		Orphan:       channel.Orphan,
		OpenedAt:     channel.OpenedAt,
		ClosedAt:     channel.ClosedAt,
		Protocol:     channel.Protocol,
		ProtocolID:   channel.ProtocolID,
		BaudRate:     channel.BaudRate,
		ConnectFlags: channel.ConnectFlags,
	}

	for _, filter := range channel.Filters {
		encoded.Filters = append(encoded.Filters, filterSchema{
			ID:          filter.ID,
			Type:        filter.Type,
			Mask:        expression.FormatBytes(filter.Mask),
			Pattern:     expression.FormatBytes(filter.Pattern),
			FlowControl: expression.FormatBytes(filter.FlowControl),
			SourceIndex: filter.SourceIndex,
		})
	}

	for _, exchange := range channel.Exchanges {
		responses := make([]refSchema, 0, len(exchange.Responses))
		for _, response := range exchange.Responses {
			responses = append(responses, toRefSchema(response))
		}
		encoded.Exchanges = append(encoded.Exchanges, exchangeSchema{
			Request:   toRefSchema(exchange.Request),
			Responses: responses,
		})
	}

	for _, ref := range channel.Unsolicited {
		encoded.Unsolicited = append(encoded.Unsolicited, toRefSchema(ref))
	}

	return encoded
}

func toRefSchema(ref domain.ExpressionRef) refSchema {
	messages := make([]string, 0, len(ref.Messages))
	for _, message := range ref.Messages {
		messages = append(messages, expression.FormatBytes(message))
	}
	return refSchema{Index: ref.Index, Messages: messages}
}

func fromSchema(file fileSchema) (domain.SimulationFile, error) {
	decoded := domain.SimulationFile{
		Source:       file.Source,
		SourceDigest: file.SourceDigest,
		RunID:        file.RunID,
		GeneratedAt:  parseTime(file.GeneratedAt),
	}

	for i, channel := range file.Channels {
		sim, err := fromChannelSchema(channel)
		if err != nil {
			return domain.SimulationFile{}, fmt.Errorf("channel %d: %w", i, err)
		}
		decoded.Channels = append(decoded.Channels, sim)
	}

	return decoded, nil
}

func fromChannelSchema(channel channelSchema) (domain.SimulationChannel, error) {
	decoded := domain.SimulationChannel{
		ChannelID:    channel.ChannelID,
		Orphan:       channel.Orphan,
		OpenedAt:     channel.OpenedAt,
		ClosedAt:     channel.ClosedAt,
		Protocol:     channel.Protocol,
		ProtocolID:   channel.ProtocolID,
		BaudRate:     channel.BaudRate,
		ConnectFlags: channel.ConnectFlags,
	}

	for _, filter := range channel.Filters {
		spec := domain.FilterSpec{ID: filter.ID, Type: filter.Type, SourceIndex: filter.SourceIndex}
		var err error
		if spec.Mask, err = optionalBytes(filter.Mask); err != nil {
			return domain.SimulationChannel{}, fmt.Errorf("filter %d mask: %w", filter.ID, err)
		}
		if spec.Pattern, err = optionalBytes(filter.Pattern); err != nil {
			return domain.SimulationChannel{}, fmt.Errorf("filter %d pattern: %w", filter.ID, err)
		}
		if spec.FlowControl, err = optionalBytes(filter.FlowControl); err != nil {
			return domain.SimulationChannel{}, fmt.Errorf("filter %d flow control: %w", filter.ID, err)
		}
		decoded.Filters = append(decoded.Filters, spec)
	}

	for _, exchange := range channel.Exchanges {
		request, err := fromRefSchema(exchange.Request)
		if err != nil {
			return domain.SimulationChannel{}, err
		}
		decodedExchange := domain.Exchange{Request: request}
		for _, response := range exchange.Responses {
			ref, err := fromRefSchema(response)
			if err != nil {
				return domain.SimulationChannel{}, err
			}
			decodedExchange.Responses = append(decodedExchange.Responses, ref)
		}
		decoded.Exchanges = append(decoded.Exchanges, decodedExchange)
	}

	for _, unsolicited := range channel.Unsolicited {
		ref, err := fromRefSchema(unsolicited)
		if err != nil {
			return domain.SimulationChannel{}, err
		}
		decoded.Unsolicited = append(decoded.Unsolicited, ref)
	}

	return decoded, nil
}

func fromRefSchema(ref refSchema) (domain.ExpressionRef, error) {
	decoded := domain.ExpressionRef{Index: ref.Index}
	for _, message := range ref.Messages {
		payload, err := expression.ParseBytes(message)
		if err != nil {
			return domain.ExpressionRef{}, fmt.Errorf("expression %d payload: %w", ref.Index, err)
		}
		decoded.Messages = append(decoded.Messages, payload)
	}
	return decoded, nil
}

func optionalBytes(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	return expression.ParseBytes(raw)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
