// Package synth builds replayable simulation channels from correlated channel
// lifetimes.
package synth

import (
	"math"

	"github.com/ptlab/ptsim/internal/domain"
)

// Channels synthesizes one simulation channel per lifetime, preserving the
// order of lifetimes.
func Channels(set domain.ExpressionSet, lifetimes []domain.ChannelLifetime) []domain.SimulationChannel {
	channels := make([]domain.SimulationChannel, 0, len(lifetimes))
	for _, lifetime := range lifetimes {
		channels = append(channels, Channel(set, lifetime))
	}
	return channels
}

// Channel pairs each write of the lifetime with the reads that follow it up to
// the next write. A write without any following read yields an exchange with
// no responses. Reads seen before the first write are kept as unsolicited.
func Channel(set domain.ExpressionSet, lifetime domain.ChannelLifetime) domain.SimulationChannel {
	channel := domain.SimulationChannel{
		ChannelID: lifetime.ChannelID,
		Orphan:    lifetime.Orphan,
		OpenedAt:  lifetime.OpenedAt,
		ClosedAt:  lifetime.ClosedAt,
	}

	if !lifetime.Orphan {
		if connect, ok := set.At(lifetime.OpenedAt); ok && connect.Command == domain.CommandConnect {
			applyConnect(&channel, connect)
		}
	}

	for _, index := range lifetime.FilterIndices {
		if expr, ok := set.At(index); ok {
			channel.Filters = append(channel.Filters, filterSpec(expr))
		}
	}

	pending := -1
	for _, index := range lifetime.MemberIndices {
		expr, ok := set.At(index)
		if !ok {
			continue
		}

		ref := domain.ExpressionRef{Index: index, Messages: expr.Payloads()}
		switch expr.Command {
		case domain.CommandWriteMessages:
			channel.Exchanges = append(channel.Exchanges, domain.Exchange{Request: ref})
			pending = len(channel.Exchanges) - 1
		case domain.CommandReadMessages:
			if pending < 0 {
				channel.Unsolicited = append(channel.Unsolicited, ref)
				continue
			}
			channel.Exchanges[pending].Responses = append(channel.Exchanges[pending].Responses, ref)
		}
	}

	return channel
}

func applyConnect(channel *domain.SimulationChannel, connect domain.Expression) {
	if name, ok := connect.String(domain.FieldProtocol); ok {
		channel.Protocol = name
	}
	if id, ok := connect.Int(domain.FieldProtocol); ok {
		channel.ProtocolID = int(id)
		if channel.Protocol == "" {
			channel.Protocol, _ = domain.ProtocolName(int(id))
		}
	}
	if baud, ok := connect.Int(domain.FieldBaud); ok {
		channel.BaudRate = int(baud)
	}
	if flags, ok := connect.Int(domain.FieldFlags); ok && flags >= 0 && flags <= math.MaxUint32 {
		channel.ConnectFlags = uint32(flags)
	}
}

func filterSpec(expr domain.Expression) domain.FilterSpec {
	spec := domain.FilterSpec{ID: domain.UnknownFilterID, SourceIndex: expr.Index}
	if id, ok := expr.Int(domain.FieldFilterID); ok {
		spec.ID = int(id)
	}
	if name, ok := expr.String(domain.FieldFilterType); ok {
		spec.Type = name
	} else if id, ok := expr.Int(domain.FieldFilterType); ok {
		spec.Type, _ = domain.FilterTypeName(int(id))
	}
	spec.Mask, _ = expr.Bytes(domain.FieldMask)
	spec.Pattern, _ = expr.Bytes(domain.FieldPattern)
	spec.FlowControl, _ = expr.Bytes(domain.FieldFlowControl)
	return spec
}
