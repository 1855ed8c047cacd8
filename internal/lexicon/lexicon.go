// Package lexicon holds the static table of recognized PassThru calls and the
// field grammar of each one. The table is built at package initialization and
// never mutated afterwards.
package lexicon

import (
	"regexp"
	"strings"

	"github.com/ptlab/ptsim/internal/domain"
)

type Representation int

const (
	Decimal Representation = iota
	// Identifier is a non-negative decimal or 0x-prefixed handle.
	Identifier
	Hex
	// Mask32 is a hex bit mask that must fit in 32 bits.
	Mask32
	Enum
	Bytes
	Text
)

// Rule extracts one named field. Pattern must have a "value" capture group.
// Repeated rules collect every match in log order; Continues lets a byte
// value run onto following lines that hold only hex bytes.
type Rule struct {
	Field     domain.FieldName
	Repr      Representation
	Pattern   *regexp.Regexp
	Repeated  bool
	Continues bool
	Lookup    func(string) (int, bool)
}

type Entry struct {
	Command domain.CommandType
	Names   []string
	Rules   []Rule
}

const (
	decimalValue = `0[xX][0-9A-Fa-f]+|-?\d+`
	hexValue     = `0[xX][0-9A-Fa-f]+|[0-9A-Fa-f]+`
	enumValue    = `\d+\s*:\s*[A-Za-z_][A-Za-z0-9_]*|[A-Za-z_][A-Za-z0-9_]*|\d+`
	bytesValue   = `[^,)\r\n]*`
)

var headingPattern = regexp.MustCompile(`^\s*(?:\[[^\]]*\]\s*|\d+(?:[:.]\d+)+s?\s+|\d+s\s+)?(?:PassThru|PT)([A-Za-z]+)\s*\(`)

func param(keys, value string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[\s(,;])(?:` + keys + `)\s*[=:]\s*(?P<value>` + value + `)`)
}

var (
	channelRule  = Rule{Field: domain.FieldChannelID, Repr: Identifier, Pattern: param(`Channel(?:Id)?`, decimalValue)}
	deviceRule   = Rule{Field: domain.FieldDeviceID, Repr: Identifier, Pattern: param(`Device(?:Id)?`, decimalValue)}
	filterIDRule = Rule{Field: domain.FieldFilterID, Repr: Identifier, Pattern: param(`Filter(?:Id)?`, decimalValue)}
	msgIDRule    = Rule{Field: domain.FieldMsgID, Repr: Identifier, Pattern: param(`MsgId`, decimalValue)}
	paramRule    = Rule{Field: domain.FieldParameter, Repr: Enum, Pattern: param(`Param(?:eter)?(?:Id)?`, enumValue), Lookup: domain.ConfigParamID}
	valueRule    = Rule{Field: domain.FieldConfigValue, Repr: Hex, Pattern: param(`Value`, hexValue)}
	statusRule   = Rule{
		Field:   domain.FieldStatus,
		Repr:    Enum,
		Pattern: regexp.MustCompile(`(?i)(?:returning|returned|return\s*[=:]|->|Status\s*[=:])\s*(?P<value>` + enumValue + `)`),
		Lookup:  domain.StatusID,
	}
	messagesRule = Rule{
		Field:     domain.FieldData,
		Repr:      Bytes,
		Pattern:   param(`Data`, bytesValue),
		Repeated:  true,
		Continues: true,
	}
)

func bytesRule(field domain.FieldName, keys string) Rule {
	return Rule{Field: field, Repr: Bytes, Pattern: param(keys, bytesValue), Continues: true}
}

// table is matched first-entry-wins on the call name.
var table = []Entry{
	{
		Command: domain.CommandConnect,
		Names:   []string{"Connect"},
		Rules: []Rule{
			channelRule,
			deviceRule,
			{Field: domain.FieldProtocol, Repr: Enum, Pattern: param(`Protocol(?:Id)?`, enumValue), Lookup: domain.ProtocolID},
			{Field: domain.FieldFlags, Repr: Mask32, Pattern: param(`(?:Connect)?Flags`, hexValue)},
			{Field: domain.FieldBaud, Repr: Decimal, Pattern: param(`Baud(?:Rate)?`, decimalValue)},
			statusRule,
		},
	},
	{
		Command: domain.CommandDisconnect,
		Names:   []string{"Disconnect"},
		Rules:   []Rule{channelRule, statusRule},
	},
	{
		Command: domain.CommandReadMessages,
		Names:   []string{"ReadMessages", "ReadMsgs"},
		Rules: []Rule{
			channelRule,
			{Field: domain.FieldNumMsgs, Repr: Decimal, Pattern: param(`p?NumMsgs|Count`, decimalValue)},
			{Field: domain.FieldTimeout, Repr: Decimal, Pattern: param(`Timeout`, decimalValue)},
			messagesRule,
			statusRule,
		},
	},
	{
		Command: domain.CommandWriteMessages,
		Names:   []string{"WriteMessages", "WriteMsgs"},
		Rules: []Rule{
			channelRule,
			{Field: domain.FieldNumMsgs, Repr: Decimal, Pattern: param(`p?NumMsgs|Count`, decimalValue)},
			{Field: domain.FieldTimeout, Repr: Decimal, Pattern: param(`Timeout`, decimalValue)},
			messagesRule,
			statusRule,
		},
	},
	{
		Command: domain.CommandStartMessageFilter,
		Names:   []string{"StartMessageFilter", "StartMsgFilter"},
		Rules: []Rule{
			channelRule,
			filterIDRule,
			{Field: domain.FieldFilterType, Repr: Enum, Pattern: param(`(?:Filter)?Type`, enumValue), Lookup: domain.FilterTypeID},
			bytesRule(domain.FieldMask, `Mask(?:Msg)?`),
			bytesRule(domain.FieldPattern, `Pattern(?:Msg)?`),
			bytesRule(domain.FieldFlowControl, `FlowControl(?:Msg)?|FlowCtl`),
			statusRule,
		},
	},
	{
		Command: domain.CommandStopMessageFilter,
		Names:   []string{"StopMessageFilter", "StopMsgFilter"},
		Rules:   []Rule{channelRule, filterIDRule, statusRule},
	},
	{
		Command: domain.CommandStartPeriodicMessage,
		Names:   []string{"StartPeriodicMessage", "StartPeriodicMsg"},
		Rules: []Rule{
			channelRule,
			msgIDRule,
			{Field: domain.FieldInterval, Repr: Decimal, Pattern: param(`(?:Time)?Interval`, decimalValue)},
			bytesRule(domain.FieldData, `Data`),
			statusRule,
		},
	},
	{
		Command: domain.CommandStopPeriodicMessage,
		Names:   []string{"StopPeriodicMessage", "StopPeriodicMsg"},
		Rules:   []Rule{channelRule, msgIDRule, statusRule},
	},
	{
		Command: domain.CommandSetConfig,
		Names:   []string{"SetConfig"},
		Rules:   []Rule{channelRule, paramRule, valueRule, statusRule},
	},
	{
		Command: domain.CommandGetConfig,
		Names:   []string{"GetConfig"},
		Rules:   []Rule{channelRule, paramRule, valueRule, statusRule},
	},
	{
		Command: domain.CommandClearBuffer,
		Names:   []string{"ClearBuffer"},
		Rules: []Rule{
			channelRule,
			{Field: domain.FieldIoctlID, Repr: Enum, Pattern: param(`Buffer|Ioctl(?:Id)?`, enumValue), Lookup: domain.IoctlID},
			statusRule,
		},
	},
	{
		Command: domain.CommandIoctl,
		Names:   []string{"Ioctl"},
		Rules: []Rule{
			channelRule,
			{Field: domain.FieldIoctlID, Repr: Enum, Pattern: param(`Ioctl(?:Id)?`, enumValue), Lookup: domain.IoctlID},
			paramRule,
			valueRule,
			statusRule,
		},
	},
	{
		Command: domain.CommandSetProgrammingVoltage,
		Names:   []string{"SetProgrammingVoltage"},
		Rules: []Rule{
			deviceRule,
			{Field: domain.FieldPinNumber, Repr: Decimal, Pattern: param(`Pin(?:Number)?`, decimalValue)},
			{Field: domain.FieldVoltage, Repr: Decimal, Pattern: param(`Voltage`, decimalValue)},
			statusRule,
		},
	},
	{
		Command: domain.CommandReadVersion,
		Names:   []string{"ReadVersion"},
		Rules:   []Rule{deviceRule, statusRule},
	},
	{
		Command: domain.CommandGetLastError,
		Names:   []string{"GetLastError"},
		Rules:   []Rule{statusRule},
	},
	{
		Command: domain.CommandOpen,
		Names:   []string{"Open"},
		Rules:   []Rule{deviceRule, statusRule},
	},
	{
		Command: domain.CommandClose,
		Names:   []string{"Close"},
		Rules:   []Rule{deviceRule, statusRule},
	},
}

var unclassified = Entry{Command: domain.CommandUnclassified}

// CallName returns the call token of a heading line, without its PT or
// PassThru prefix. It does not check the vocabulary.
func CallName(line string) (string, bool) {
	match := headingPattern.FindStringSubmatch(line)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// IsHeading reports whether line opens a new command block: a recognized call
// token at logical line start followed by a parameter list.
func IsHeading(line string) bool {
	name, ok := CallName(line)
	if !ok {
		return false
	}
	_, found := lookup(name)
	return found
}

// Resolve classifies a heading line. Unknown input resolves to the
// Unclassified entry, which carries no rules.
func Resolve(heading string) Entry {
	name, ok := CallName(heading)
	if !ok {
		return unclassified
	}
	entry, found := lookup(name)
	if !found {
		return unclassified
	}
	return entry
}

// Entries returns a copy of the table in match order.
func Entries() []Entry {
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}

func lookup(name string) (Entry, bool) {
	for _, entry := range table {
		for _, candidate := range entry.Names {
			if strings.EqualFold(candidate, name) {
				return entry, true
			}
		}
	}
	return Entry{}, false
}
