package domain

import "time"

// UnknownFilterID marks a filter whose id was missing from the log.
const UnknownFilterID = -1

type FilterSpec struct {
	ID          int
	Type        string
	Mask        []byte
	Pattern     []byte
	FlowControl []byte
	SourceIndex int
}

// ExpressionRef points back at an expression of the owning set and carries
// its payloads so a playback consumer never needs the set itself.
type ExpressionRef struct {
	Index    int
	Messages [][]byte
}

type Exchange struct {
	Request   ExpressionRef
	Responses []ExpressionRef
}

// SimulationChannel is a replayable script of one channel lifetime.
type SimulationChannel struct {
	ChannelID    int
	Orphan       bool
	OpenedAt     int
	ClosedAt     int
	Protocol     string
	ProtocolID   int
	BaudRate     int
	ConnectFlags uint32
	Filters      []FilterSpec
	Exchanges    []Exchange
	Unsolicited  []ExpressionRef
}

func (c SimulationChannel) ResponseCount() int {
	total := 0
	for _, exchange := range c.Exchanges {
		total += len(exchange.Responses)
	}
	return total
}

// SimulationFile is the persisted form of one synthesis run.
type SimulationFile struct {
	Source       string
	SourceDigest string
	RunID        string
	GeneratedAt  time.Time
	Channels     []SimulationChannel
}
