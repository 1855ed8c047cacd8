package segment

import (
	"testing"

	"github.com/ptlab/ptsim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trace = `# capture start
vendor banner

PTOpen(DeviceId=1) returning 0
PTConnect(DeviceId=1, ProtocolId=6,
    Flags=0x0, Baud=500000, ChannelId=1)
  returning 0:STATUS_NOERROR
PTWriteMessages(ChannelId=1, Data=01 02`

func TestBlocksSplitsOnHeadings(t *testing.T) {
	blocks := Collect(trace)

	require.Len(t, blocks, 4)
	assert.Equal(t, domain.CommandBlock{
		StartLine: 0,
		Offset:    0,
		Lines:     []string{"# capture start", "vendor banner"},
	}, blocks[0])
	assert.Equal(t, 3, blocks[1].StartLine)
	assert.Equal(t, []string{"PTOpen(DeviceId=1) returning 0"}, blocks[1].Lines)
	assert.Equal(t, 4, blocks[2].StartLine)
	assert.Len(t, blocks[2].Lines, 3)
	assert.Equal(t, "  returning 0:STATUS_NOERROR", blocks[2].Lines[2])
	assert.Equal(t, 7, blocks[3].StartLine)
	assert.Equal(t, "PTWriteMessages(ChannelId=1, Data=01 02", blocks[3].Heading())
}

func TestBlocksCoverEveryNonBlankLineOnce(t *testing.T) {
	total := 0
	for block := range Blocks(trace) {
		total += len(block.Lines)
	}
	assert.Equal(t, NonBlankLines(trace), total)
}

func TestBlocksOffsetsPointAtHeadings(t *testing.T) {
	for _, block := range Collect(trace) {
		assert.Equal(t, block.Lines[0], trace[block.Offset:block.Offset+len(block.Lines[0])])
	}
}

func TestBlocksStripsCarriageReturns(t *testing.T) {
	blocks := Collect("PTOpen(DeviceId=1)\r\n\r\nPTClose(DeviceId=1)\r\n")

	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"PTOpen(DeviceId=1)"}, blocks[0].Lines)
	assert.Equal(t, []string{"PTClose(DeviceId=1)"}, blocks[1].Lines)
	assert.Equal(t, 2, blocks[1].StartLine)
}

func TestBlocksIsRestartable(t *testing.T) {
	seq := Blocks(trace)

	var first, second []domain.CommandBlock
	for block := range seq {
		first = append(first, block)
	}
	for block := range seq {
		second = append(second, block)
	}
	assert.Equal(t, first, second)
}

func TestBlocksStopsWhenConsumerBreaks(t *testing.T) {
	count := 0
	for range Blocks(trace) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestBlocksOnEmptyInput(t *testing.T) {
	assert.Empty(t, Collect(""))
	assert.Empty(t, Collect("\n  \n\t\n"))
	assert.Equal(t, 0, NonBlankLines("\n\n"))
}
