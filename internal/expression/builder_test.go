package expression

import (
	"testing"

	"github.com/ptlab/ptsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func block(lines ...string) domain.CommandBlock {
	return domain.CommandBlock{Lines: lines}
}

func TestBuildConnect(t *testing.T) {
	expr, misses := Build(1, block(
		"PTConnect(DeviceId=1, ProtocolId=6:ISO15765, Flags=0x00000800, Baud=500000, ChannelId=1) returning 0:STATUS_NOERROR",
	))

	require.Empty(t, misses)
	assert.Equal(t, 1, expr.Index)
	assert.Equal(t, domain.CommandConnect, expr.Command)
	assert.Equal(t, domain.Fields{
		domain.FieldChannelID: {Kind: domain.FieldKindInt, Int: 1},
		domain.FieldDeviceID:  {Kind: domain.FieldKindInt, Int: 1},
		domain.FieldProtocol:  {Kind: domain.FieldKindEnum, Int: 6, Str: "ISO15765"},
		domain.FieldFlags:     {Kind: domain.FieldKindInt, Int: 0x800},
		domain.FieldBaud:      {Kind: domain.FieldKindInt, Int: 500000},
		domain.FieldStatus:    {Kind: domain.FieldKindEnum, Int: 0, Str: "STATUS_NOERROR"},
	}, expr.Fields)
}

func TestBuildWriteWithoutChannel(t *testing.T) {
	expr, misses := Build(0, block("PTWriteMessages(Data=01 02 03)"))

	require.Empty(t, misses)
	assert.Equal(t, domain.CommandWriteMessages, expr.Command)
	_, ok := expr.Int(domain.FieldChannelID)
	assert.False(t, ok)
	assert.Equal(t, [][]byte{{0x01, 0x02, 0x03}}, expr.Payloads())
}

func TestBuildStartMessageFilter(t *testing.T) {
	expr, misses := Build(2, block(
		"PTStartMessageFilter(ChannelId=1, FilterType=FLOW_CONTROL_FILTER, Mask=FF FF FF FF, Pattern=00 00 07 E8, FlowControl=00 00 07 E0, FilterId=3)",
	))

	require.Empty(t, misses)
	assert.Equal(t, domain.CommandStartMessageFilter, expr.Command)

	id, ok := expr.Int(domain.FieldFilterID)
	require.True(t, ok)
	assert.Equal(t, int64(3), id)

	assert.Equal(t, domain.FieldValue{Kind: domain.FieldKindEnum, Int: 3, Str: "FLOW_CONTROL_FILTER"}, expr.Fields[domain.FieldFilterType])

	mask, ok := expr.Bytes(domain.FieldMask)
	require.True(t, ok)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, mask)

	flow, ok := expr.Bytes(domain.FieldFlowControl)
	require.True(t, ok)
	assert.Equal(t, []byte{0x00, 0x00, 0x07, 0xE0}, flow)
}

func TestBuildMultiLineMessages(t *testing.T) {
	expr, misses := Build(5, block(
		"PTReadMessages(ChannelId=1, NumMsgs=2, Timeout=100) returning 0:STATUS_NOERROR",
		"  Msg[0]: Data=00 00 07 E8 10 14",
		"    62 F1 90 57 30 4C",
		"  Msg[1]: Data=00 00 07 E8 02 50 03",
	))

	require.Empty(t, misses)
	assert.Equal(t, [][]byte{
		{0x00, 0x00, 0x07, 0xE8, 0x10, 0x14, 0x62, 0xF1, 0x90, 0x57, 0x30, 0x4C},
		{0x00, 0x00, 0x07, 0xE8, 0x02, 0x50, 0x03},
	}, expr.Payloads())

	n, ok := expr.Int(domain.FieldNumMsgs)
	require.True(t, ok)
	assert.Equal(t, int64(2), n)
}

func TestBuildContinuationEndingParameterList(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []byte
	}{
		{
			name:  "closing paren",
			lines: []string{"PTWriteMessages(ChannelId=1, Data=00 00 07 DF", "    02 01 00)"},
			want:  []byte{0x00, 0x00, 0x07, 0xDF, 0x02, 0x01, 0x00},
		},
		{
			name:  "trailing parameter",
			lines: []string{"PTWriteMessages(ChannelId=1, Data=00 00 07 DF", "    02 01 00, Timeout=100)"},
			want:  []byte{0x00, 0x00, 0x07, 0xDF, 0x02, 0x01, 0x00},
		},
		{
			name:  "status tail",
			lines: []string{"PTWriteMessages(ChannelId=1, Data=00 00 07 DF", "    02 01 00 returning 0"},
			want:  []byte{0x00, 0x00, 0x07, 0xDF, 0x02, 0x01, 0x00},
		},
		{
			name:  "dump row then closing row",
			lines: []string{"PTWriteMessages(ChannelId=1, Data=00 00 07 DF", "    02 01", "    00)"},
			want:  []byte{0x00, 0x00, 0x07, 0xDF, 0x02, 0x01, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, misses := Build(0, block(tt.lines...))

			require.Empty(t, misses)
			assert.Equal(t, [][]byte{tt.want}, expr.Payloads())
		})
	}
}

func TestBuildUnreadableContinuationLeavesPayloadOut(t *testing.T) {
	expr, misses := Build(4, block(
		"PTWriteMessages(ChannelId=1, Data=00 00 07 DF",
		"    02 0Z 00)",
	))

	assert.NotContains(t, expr.Fields, domain.FieldData)
	require.Len(t, misses, 1)
	assert.Equal(t, domain.FieldData, misses[0].Field)
	assert.Equal(t, 4, misses[0].Index)
}

func TestBuildMalformedBytesIsReportedAndLeftOut(t *testing.T) {
	expr, misses := Build(3, block("PTWriteMessages(ChannelId=1, Data=0G 11)"))

	assert.Equal(t, domain.CommandWriteMessages, expr.Command)
	assert.NotContains(t, expr.Fields, domain.FieldData)
	assert.Contains(t, expr.Fields, domain.FieldChannelID)
	assert.Equal(t, []domain.FieldMiss{{Index: 3, Field: domain.FieldData, Raw: "0G 11"}}, misses)
}

func TestBuildRejectsNegativeHandles(t *testing.T) {
	expr, misses := Build(2, block("PTConnect(DeviceId=1, ChannelId=-1, ProtocolId=5)"))

	assert.NotContains(t, expr.Fields, domain.FieldChannelID)
	assert.Contains(t, expr.Fields, domain.FieldDeviceID)
	assert.Equal(t, []domain.FieldMiss{{Index: 2, Field: domain.FieldChannelID, Raw: "-1"}}, misses)
}

func TestBuildRejectsFlagsWiderThan32Bits(t *testing.T) {
	expr, misses := Build(1, block("PTConnect(ChannelId=1, Flags=0x100000800)"))

	assert.NotContains(t, expr.Fields, domain.FieldFlags)
	assert.Equal(t, []domain.FieldMiss{{Index: 1, Field: domain.FieldFlags, Raw: "0x100000800"}}, misses)

	expr, misses = Build(1, block("PTConnect(ChannelId=1, Flags=0xFFFFFFFF)"))
	require.Empty(t, misses)
	flags, ok := expr.Int(domain.FieldFlags)
	require.True(t, ok)
	assert.Equal(t, int64(0xFFFFFFFF), flags)
}

func TestBuildEnumForms(t *testing.T) {
	tests := []struct {
		name string
		line string
		want domain.FieldValue
	}{
		{name: "id and name", line: "PTConnect(ProtocolId=5:CAN)", want: domain.FieldValue{Kind: domain.FieldKindEnum, Int: 5, Str: "CAN"}},
		{name: "known name", line: "PTConnect(ProtocolId=ISO15765)", want: domain.FieldValue{Kind: domain.FieldKindEnum, Int: 6, Str: "ISO15765"}},
		{name: "bare id", line: "PTConnect(ProtocolId=99)", want: domain.FieldValue{Kind: domain.FieldKindEnum, Int: 99}},
		{name: "unknown name", line: "PTConnect(ProtocolId=FLEXRAY)", want: domain.FieldValue{Kind: domain.FieldKindEnum, Int: -1, Str: "FLEXRAY"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, misses := Build(0, block(tt.line))
			require.Empty(t, misses)
			assert.Equal(t, tt.want, expr.Fields[domain.FieldProtocol])
		})
	}
}

func TestBuildNumericForms(t *testing.T) {
	expr, misses := Build(0, block("PTConnect(ChannelId=0x10, Baud=0x7A120, Flags=800)"))

	require.Empty(t, misses)
	id, _ := expr.Int(domain.FieldChannelID)
	baud, _ := expr.Int(domain.FieldBaud)
	flags, _ := expr.Int(domain.FieldFlags)
	assert.Equal(t, int64(16), id)
	assert.Equal(t, int64(500000), baud)
	assert.Equal(t, int64(0x800), flags)
}

func TestBuildUnclassifiedKeepsRawText(t *testing.T) {
	lines := []string{"*** J2534 logger v2 ***", "started"}
	expr, misses := Build(0, block(lines...))

	assert.Empty(t, misses)
	assert.Equal(t, domain.CommandUnclassified, expr.Command)
	assert.Empty(t, expr.Fields)
	assert.Equal(t, lines, expr.RawText)

	lines[0] = "mutated"
	assert.Equal(t, "*** J2534 logger v2 ***", expr.RawText[0])
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []byte
		wantErr bool
	}{
		{name: "spaced", raw: "01 a2 FF", want: []byte{0x01, 0xA2, 0xFF}},
		{name: "dashed", raw: "01-02-03", want: []byte{0x01, 0x02, 0x03}},
		{name: "packed", raw: "0102 03", want: []byte{0x01, 0x02, 0x03}},
		{name: "empty", raw: "", want: []byte{}},
		{name: "odd digits", raw: "012", wantErr: true},
		{name: "not hex", raw: "zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBytes(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "00 0A FF", FormatBytes([]byte{0x00, 0x0A, 0xFF}))
	assert.Equal(t, "", FormatBytes(nil))
}

func TestBuildSetConfigValue(t *testing.T) {
	expr, misses := Build(0, block("PTSetConfig(ChannelId=1, Parameter=DATA_RATE, Value=0x7A120)"))

	require.Empty(t, misses)
	assert.Equal(t, domain.CommandSetConfig, expr.Command)
	value, ok := expr.Int(domain.FieldConfigValue)
	require.True(t, ok)
	assert.Equal(t, int64(500000), value)
}
