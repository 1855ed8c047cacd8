package domain

// CommandType identifies which PassThru API call a logged block represents.
type CommandType string

const (
	CommandUnclassified          CommandType = "Unclassified"
	CommandOpen                  CommandType = "Open"
	CommandClose                 CommandType = "Close"
	CommandConnect               CommandType = "Connect"
	CommandDisconnect            CommandType = "Disconnect"
	CommandReadMessages          CommandType = "ReadMessages"
	CommandWriteMessages         CommandType = "WriteMessages"
	CommandStartPeriodicMessage  CommandType = "StartPeriodicMessage"
	CommandStopPeriodicMessage   CommandType = "StopPeriodicMessage"
	CommandStartMessageFilter    CommandType = "StartMessageFilter"
	CommandStopMessageFilter     CommandType = "StopMessageFilter"
	CommandSetProgrammingVoltage CommandType = "SetProgrammingVoltage"
	CommandReadVersion           CommandType = "ReadVersion"
	CommandGetLastError          CommandType = "GetLastError"
	CommandIoctl                 CommandType = "Ioctl"
	CommandSetConfig             CommandType = "SetConfig"
	CommandGetConfig             CommandType = "GetConfig"
	CommandClearBuffer           CommandType = "ClearBuffer"
)

func (c CommandType) Valid() bool {
	switch c {
	case CommandUnclassified, CommandOpen, CommandClose, CommandConnect, CommandDisconnect,
		CommandReadMessages, CommandWriteMessages, CommandStartPeriodicMessage, CommandStopPeriodicMessage,
		CommandStartMessageFilter, CommandStopMessageFilter, CommandSetProgrammingVoltage,
		CommandReadVersion, CommandGetLastError, CommandIoctl, CommandSetConfig, CommandGetConfig,
		CommandClearBuffer:
		return true
	default:
		return false
	}
}

// IsMessageExchange reports whether the command carries bus traffic that
// must belong to a channel lifetime.
func (c CommandType) IsMessageExchange() bool {
	return c == CommandReadMessages || c == CommandWriteMessages
}

// CommandBlock is a contiguous run of non-blank log lines believed to hold one
// logged API call.
type CommandBlock struct {
	StartLine int
	Offset    int
	Lines     []string
}

func (b CommandBlock) Heading() string {
	if len(b.Lines) == 0 {
		return ""
	}
	return b.Lines[0]
}
