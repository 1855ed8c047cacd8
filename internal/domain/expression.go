package domain

import (
	"iter"
	"strings"
)

type FieldName string

const (
	FieldChannelID   FieldName = "ChannelId"
	FieldDeviceID    FieldName = "DeviceId"
	FieldProtocol    FieldName = "Protocol"
	FieldFlags       FieldName = "Flags"
	FieldBaud        FieldName = "Baud"
	FieldFilterID    FieldName = "FilterId"
	FieldFilterType  FieldName = "Type"
	FieldMask        FieldName = "Mask"
	FieldPattern     FieldName = "Pattern"
	FieldFlowControl FieldName = "FlowControl"
	FieldData        FieldName = "Data"
	FieldNumMsgs     FieldName = "NumMsgs"
	FieldTimeout     FieldName = "Timeout"
	FieldMsgID       FieldName = "MsgId"
	FieldInterval    FieldName = "Interval"
	FieldIoctlID     FieldName = "IoctlId"
	FieldParameter   FieldName = "Parameter"
	FieldConfigValue FieldName = "Value"
	FieldVoltage     FieldName = "Voltage"
	FieldPinNumber   FieldName = "PinNumber"
	FieldStatus      FieldName = "Status"
)

type FieldKind int

const (
	FieldKindString FieldKind = iota
	FieldKindInt
	FieldKindEnum
	FieldKindBytes
	FieldKindMessages
)

// FieldValue holds one extracted field. Enum values carry both the numeric id
// and the symbolic name when either is known. Messages holds every payload of a
// multi-message read or write in log order.
type FieldValue struct {
	Kind     FieldKind
	Str      string
	Int      int64
	Bytes    []byte
	Messages [][]byte
}

type Fields map[FieldName]FieldValue

// Expression is the structured parse of one logged API call. RawText alone
// reconstructs the source block.
type Expression struct {
	Index   int
	Command CommandType
	Fields  Fields
	RawText []string
}

func (e Expression) Int(name FieldName) (int64, bool) {
	v, ok := e.Fields[name]
	if !ok || (v.Kind != FieldKindInt && v.Kind != FieldKindEnum) {
		return 0, false
	}
	if v.Kind == FieldKindEnum && v.Int < 0 {
		return 0, false
	}
	return v.Int, true
}

func (e Expression) String(name FieldName) (string, bool) {
	v, ok := e.Fields[name]
	if !ok || (v.Kind != FieldKindString && v.Kind != FieldKindEnum) {
		return "", false
	}
	return v.Str, v.Str != ""
}

func (e Expression) Bytes(name FieldName) ([]byte, bool) {
	v, ok := e.Fields[name]
	if !ok {
		return nil, false
	}
	switch v.Kind {
	case FieldKindBytes:
		return v.Bytes, true
	case FieldKindMessages:
		if len(v.Messages) == 0 {
			return nil, false
		}
		return v.Messages[0], true
	default:
		return nil, false
	}
}

// Payloads returns every message payload carried by the expression.
func (e Expression) Payloads() [][]byte {
	v, ok := e.Fields[FieldData]
	if !ok {
		return nil
	}
	switch v.Kind {
	case FieldKindMessages:
		return v.Messages
	case FieldKindBytes:
		return [][]byte{v.Bytes}
	default:
		return nil
	}
}

func (e Expression) Text() string {
	return strings.Join(e.RawText, "\n")
}

// ExpressionSet is the ordered expressions of exactly one source log. Order is
// log order and is meaningful to correlation.
type ExpressionSet struct {
	source      string
	expressions []Expression
}

func NewExpressionSet(source string, expressions []Expression) ExpressionSet {
	owned := make([]Expression, len(expressions))
	copy(owned, expressions)
	return ExpressionSet{source: source, expressions: owned}
}

func (s ExpressionSet) Source() string {
	return s.source
}

func (s ExpressionSet) Len() int {
	return len(s.expressions)
}

func (s ExpressionSet) At(index int) (Expression, bool) {
	if index < 0 || index >= len(s.expressions) {
		return Expression{}, false
	}
	return s.expressions[index], true
}

func (s ExpressionSet) All() iter.Seq2[int, Expression] {
	return func(yield func(int, Expression) bool) {
		for i, expr := range s.expressions {
			if !yield(i, expr) {
				return
			}
		}
	}
}

// Expressions returns a copy of the ordered expressions.
func (s ExpressionSet) Expressions() []Expression {
	out := make([]Expression, len(s.expressions))
	copy(out, s.expressions)
	return out
}

func (s ExpressionSet) LastIndex() int {
	return len(s.expressions) - 1
}

// RawLines concatenates the raw text of every expression in order.
func (s ExpressionSet) RawLines() []string {
	lines := make([]string, 0, len(s.expressions)*2)
	for _, expr := range s.expressions {
		lines = append(lines, expr.RawText...)
	}
	return lines
}

func (s ExpressionSet) CountByCommand() map[CommandType]int {
	counts := make(map[CommandType]int)
	for _, expr := range s.expressions {
		counts[expr.Command]++
	}
	return counts
}
