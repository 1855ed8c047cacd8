package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTypeValid(t *testing.T) {
	assert.True(t, CommandConnect.Valid())
	assert.True(t, CommandUnclassified.Valid())
	assert.False(t, CommandType("Reconnect").Valid())
	assert.False(t, CommandType("").Valid())
}

func TestCommandTypeIsMessageExchange(t *testing.T) {
	assert.True(t, CommandReadMessages.IsMessageExchange())
	assert.True(t, CommandWriteMessages.IsMessageExchange())
	assert.False(t, CommandStartPeriodicMessage.IsMessageExchange())
	assert.False(t, CommandConnect.IsMessageExchange())
}

func TestChannelLifetimeOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    ChannelLifetime
		b    ChannelLifetime
		want bool
	}{
		{
			name: "disjoint",
			a:    ChannelLifetime{OpenedAt: 1, ClosedAt: 4, Closed: true},
			b:    ChannelLifetime{OpenedAt: 5, ClosedAt: 9, Closed: true},
			want: false,
		},
		{
			name: "shared boundary index",
			a:    ChannelLifetime{OpenedAt: 1, ClosedAt: 5, Closed: true},
			b:    ChannelLifetime{OpenedAt: 5, ClosedAt: 9, Closed: true},
			want: true,
		},
		{
			name: "open lifetime extends to end of input",
			a:    ChannelLifetime{OpenedAt: 1},
			b:    ChannelLifetime{OpenedAt: 100, ClosedAt: 120, Closed: true},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestChannelLifetimeContainsAndKey(t *testing.T) {
	lifetime := ChannelLifetime{ChannelID: 7, OpenedAt: 3, ClosedAt: 6, Closed: true, FilterIDs: []int{2}}

	assert.False(t, lifetime.Contains(2))
	assert.True(t, lifetime.Contains(3))
	assert.True(t, lifetime.Contains(6))
	assert.False(t, lifetime.Contains(7))
	assert.Equal(t, LifetimeKey{ChannelID: 7, OpenedAt: 3}, lifetime.Key())
	assert.True(t, lifetime.HasFilter(2))
	assert.False(t, lifetime.HasFilter(3))
}

func TestExpressionAccessors(t *testing.T) {
	expr := Expression{
		Index:   4,
		Command: CommandConnect,
		Fields: Fields{
			FieldChannelID: {Kind: FieldKindInt, Int: 2},
			FieldProtocol:  {Kind: FieldKindEnum, Int: 6, Str: "ISO15765"},
			FieldStatus:    {Kind: FieldKindEnum, Int: -1, Str: "STATUS_VENDOR"},
			FieldData:      {Kind: FieldKindMessages, Messages: [][]byte{{0x01}, {0x02, 0x03}}},
		},
		RawText: []string{"PTConnect(", "  ChannelId=2)"},
	}

	id, ok := expr.Int(FieldChannelID)
	require.True(t, ok)
	assert.Equal(t, int64(2), id)

	protocol, ok := expr.String(FieldProtocol)
	require.True(t, ok)
	assert.Equal(t, "ISO15765", protocol)

	_, ok = expr.Int(FieldStatus)
	assert.False(t, ok, "unknown enum id must not read as an integer")

	_, ok = expr.Int(FieldBaud)
	assert.False(t, ok)

	assert.Equal(t, [][]byte{{0x01}, {0x02, 0x03}}, expr.Payloads())
	assert.Equal(t, "PTConnect(\n  ChannelId=2)", expr.Text())
}

func TestExpressionSetIsOrderedAndOwned(t *testing.T) {
	input := []Expression{
		{Index: 0, Command: CommandOpen, RawText: []string{"PTOpen()"}},
		{Index: 1, Command: CommandConnect, RawText: []string{"PTConnect(", "ChannelId=1)"}},
		{Index: 2, Command: CommandOpen, RawText: []string{"PTOpen()"}},
	}
	set := NewExpressionSet("trace", input)
	input[0].Command = CommandClose

	assert.Equal(t, "trace", set.Source())
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, 2, set.LastIndex())

	first, ok := set.At(0)
	require.True(t, ok)
	assert.Equal(t, CommandOpen, first.Command)

	_, ok = set.At(3)
	assert.False(t, ok)

	var order []int
	for i, expr := range set.All() {
		order = append(order, i)
		assert.Equal(t, i, expr.Index)
	}
	assert.Equal(t, []int{0, 1, 2}, order)

	assert.Equal(t, []string{"PTOpen()", "PTConnect(", "ChannelId=1)", "PTOpen()"}, set.RawLines())
	assert.Equal(t, map[CommandType]int{CommandOpen: 2, CommandConnect: 1}, set.CountByCommand())
}

func TestSimulationChannelResponseCount(t *testing.T) {
	channel := SimulationChannel{Exchanges: []Exchange{
		{Request: ExpressionRef{Index: 1}, Responses: []ExpressionRef{{Index: 2}, {Index: 3}}},
		{Request: ExpressionRef{Index: 4}},
	}}

	assert.Equal(t, 2, channel.ResponseCount())
}

func TestDiagnosticsEmpty(t *testing.T) {
	assert.True(t, Diagnostics{}.Empty())
	assert.False(t, Diagnostics{Orphans: []int{3}}.Empty())
}
