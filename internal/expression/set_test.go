package expression

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ptlab/ptsim/internal/domain"
	"github.com/ptlab/ptsim/internal/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trace = `J2534 capture, tool v4.1
0.001s PTOpen(DeviceId=1) returning 0:STATUS_NOERROR

0.002s PTConnect(DeviceId=1, ProtocolId=6:ISO15765, Flags=0x0, Baud=500000, ChannelId=1) returning 0:STATUS_NOERROR
0.003s PTStartMessageFilter(ChannelId=1, FilterType=3, Mask=FF FF FF FF, Pattern=00 00 07 E8, FlowControl=00 00 07 E0, FilterId=3)
  returning 0:STATUS_NOERROR
0.004s PTWriteMessages(ChannelId=1, NumMsgs=1, Timeout=100)
  Msg[0]: Data=00 00 07 E0 02 10 03
0.005s PTReadMessages(ChannelId=1, NumMsgs=1, Timeout=100, Data=00 00 07 E8 XX)
0.006s PTDisconnect(ChannelId=1) returning 0:STATUS_NOERROR
`

func TestParseBuildsOneExpressionPerBlock(t *testing.T) {
	set, diagnostics := Parse("capture", trace)

	assert.Equal(t, "capture", set.Source())
	require.Equal(t, 7, set.Len())

	var commands []domain.CommandType
	for i, expr := range set.All() {
		assert.Equal(t, i, expr.Index)
		commands = append(commands, expr.Command)
	}
	assert.Equal(t, []domain.CommandType{
		domain.CommandUnclassified,
		domain.CommandOpen,
		domain.CommandConnect,
		domain.CommandStartMessageFilter,
		domain.CommandWriteMessages,
		domain.CommandReadMessages,
		domain.CommandDisconnect,
	}, commands)

	assert.Equal(t, []int{0}, diagnostics.Unclassified)
	require.Len(t, diagnostics.FieldMisses, 1)
	assert.Equal(t, 5, diagnostics.FieldMisses[0].Index)
	assert.Equal(t, domain.FieldData, diagnostics.FieldMisses[0].Field)
}

func TestParseRawLinesReconstructNonBlankInput(t *testing.T) {
	set, _ := Parse("capture", trace)

	var want []string
	for line := range strings.Lines(trace) {
		if strings.TrimSpace(line) != "" {
			want = append(want, strings.TrimRight(line, "\r\n"))
		}
	}
	assert.Equal(t, want, set.RawLines())
	assert.Equal(t, segment.NonBlankLines(trace), len(set.RawLines()))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	set, diagnostics := Parse("capture", trace)

	var encoded bytes.Buffer
	require.NoError(t, Encode(&encoded, set))

	decoded, decodedDiagnostics, err := Decode("capture", &encoded)
	require.NoError(t, err)

	assert.Equal(t, set.Source(), decoded.Source())
	if diff := cmp.Diff(set.Expressions(), decoded.Expressions()); diff != "" {
		t.Fatalf("decoded expressions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(diagnostics, decodedDiagnostics); diff != "" {
		t.Fatalf("decoded diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeIsIdempotent(t *testing.T) {
	set, _ := Parse("capture", trace)

	var first bytes.Buffer
	require.NoError(t, Encode(&first, set))

	reparsed, _, err := Decode("capture", bytes.NewReader(first.Bytes()))
	require.NoError(t, err)

	var second bytes.Buffer
	require.NoError(t, Encode(&second, reparsed))

	assert.Equal(t, first.String(), second.String())
}

func TestEncodeSeparatesExpressionsWithBlankLine(t *testing.T) {
	set, _ := Parse("t", "PTOpen(DeviceId=1)\nPTClose(DeviceId=1)\n")

	var out bytes.Buffer
	require.NoError(t, Encode(&out, set))
	assert.Equal(t, "PTOpen(DeviceId=1)\n\nPTClose(DeviceId=1)\n", out.String())
}

func TestParseEmptyInput(t *testing.T) {
	set, diagnostics := Parse("empty", "")

	assert.Equal(t, 0, set.Len())
	assert.True(t, diagnostics.Empty())
}
