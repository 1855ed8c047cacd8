// Package expression turns command blocks into typed expressions and reads and
// writes the .ptExp exchange format.
package expression

import (
	"encoding/hex"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ptlab/ptsim/internal/domain"
	"github.com/ptlab/ptsim/internal/lexicon"
)

var (
	hexDumpLine  = regexp.MustCompile(`^\s+(?:[0-9A-Fa-f]{2}[\s-]*)+$`)
	hexDumpTail  = regexp.MustCompile(`^\s+(?P<hex>(?:[0-9A-Fa-f]{2}[\s-]*)+)(?:[),]|returning|returned|->)`)
	hexDumpStart = regexp.MustCompile(`^\s+[0-9A-Fa-f]{2}(?:[\s-]|$)`)
)

// Build classifies block and extracts its fields. It never fails: fields that
// are present but unparsable are left out of the expression and reported as
// misses.
func Build(index int, block domain.CommandBlock) (domain.Expression, []domain.FieldMiss) {
	raw := make([]string, len(block.Lines))
	copy(raw, block.Lines)

	expr := domain.Expression{
		Index:   index,
		Command: domain.CommandUnclassified,
		Fields:  domain.Fields{},
		RawText: raw,
	}

	entry := lexicon.Resolve(block.Heading())
	expr.Command = entry.Command

	var misses []domain.FieldMiss
	for _, rule := range entry.Rules {
		raws := capture(rule, raw)
		if len(raws) == 0 {
			continue
		}

		value, ok := parseRule(rule, raws)
		if !ok {
			misses = append(misses, domain.FieldMiss{Index: index, Field: rule.Field, Raw: strings.Join(raws, " | ")})
			continue
		}
		expr.Fields[rule.Field] = value
	}

	return expr, misses
}

// capture returns the raw text of every match of rule over lines. A
// non-repeated rule stops at its first match.
func capture(rule lexicon.Rule, lines []string) []string {
	var out []string
	for i := 0; i < len(lines); i++ {
		matches := rule.Pattern.FindAllStringSubmatchIndex(lines[i], -1)
		if len(matches) == 0 {
			continue
		}

		group := rule.Pattern.SubexpIndex("value")
		for _, m := range matches {
			value := strings.TrimSpace(lines[i][m[2*group]:m[2*group+1]])
			runsToEOL := strings.TrimSpace(lines[i][m[2*group+1]:]) == ""

			if rule.Continues && runsToEOL {
				value, i = continuation(value, lines, i)
			}

			out = append(out, value)
			if !rule.Repeated {
				return out
			}
		}
	}
	return out
}

// continuation extends value with the hex rows following lines[i] and returns
// the index of the last row consumed whole. A row ending the parameter list
// contributes its hex prefix. A row that starts with hex bytes but cannot be
// read is appended as is, so the value fails to parse instead of being cut
// short.
func continuation(value string, lines []string, i int) (string, int) {
	for i+1 < len(lines) {
		next := lines[i+1]
		switch {
		case hexDumpLine.MatchString(next):
			value = strings.TrimSpace(value + " " + strings.TrimSpace(next))
			i++
		case hexDumpTail.MatchString(next):
			m := hexDumpTail.FindStringSubmatch(next)
			return strings.TrimSpace(value + " " + strings.TrimSpace(m[hexDumpTail.SubexpIndex("hex")])), i
		case hexDumpStart.MatchString(next):
			return value + " " + strings.TrimSpace(next), i
		default:
			return value, i
		}
	}
	return value, i
}

func parseRule(rule lexicon.Rule, raws []string) (domain.FieldValue, bool) {
	if rule.Repeated && rule.Repr == lexicon.Bytes {
		messages := make([][]byte, 0, len(raws))
		for _, raw := range raws {
			payload, err := ParseBytes(raw)
			if err != nil {
				return domain.FieldValue{}, false
			}
			messages = append(messages, payload)
		}
		return domain.FieldValue{Kind: domain.FieldKindMessages, Messages: messages}, true
	}

	raw := raws[0]
	switch rule.Repr {
	case lexicon.Decimal:
		n, err := parseDecimal(raw)
		if err != nil {
			return domain.FieldValue{}, false
		}
		return domain.FieldValue{Kind: domain.FieldKindInt, Int: n}, true
	case lexicon.Identifier:
		n, err := parseDecimal(raw)
		if err != nil || n < 0 {
			return domain.FieldValue{}, false
		}
		return domain.FieldValue{Kind: domain.FieldKindInt, Int: n}, true
	case lexicon.Hex:
		n, err := parseHex(raw)
		if err != nil {
			return domain.FieldValue{}, false
		}
		return domain.FieldValue{Kind: domain.FieldKindInt, Int: n}, true
	case lexicon.Mask32:
		n, err := parseHex(raw)
		if err != nil || n < 0 || n > math.MaxUint32 {
			return domain.FieldValue{}, false
		}
		return domain.FieldValue{Kind: domain.FieldKindInt, Int: n}, true
	case lexicon.Enum:
		return parseEnum(raw, rule.Lookup)
	case lexicon.Bytes:
		payload, err := ParseBytes(raw)
		if err != nil {
			return domain.FieldValue{}, false
		}
		return domain.FieldValue{Kind: domain.FieldKindBytes, Bytes: payload}, true
	default:
		if raw == "" {
			return domain.FieldValue{}, false
		}
		return domain.FieldValue{Kind: domain.FieldKindString, Str: raw}, true
	}
}

func parseDecimal(raw string) (int64, error) {
	if hasHexPrefix(raw) {
		return strconv.ParseInt(raw[2:], 16, 64)
	}
	return strconv.ParseInt(raw, 10, 64)
}

func parseHex(raw string) (int64, error) {
	if hasHexPrefix(raw) {
		raw = raw[2:]
	}
	n, err := strconv.ParseUint(raw, 16, 64)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

func hasHexPrefix(raw string) bool {
	return len(raw) > 2 && raw[0] == '0' && (raw[1] == 'x' || raw[1] == 'X')
}

// parseEnum accepts "id:name", a bare name, or a bare id. Unknown ids are
// stored as -1.
func parseEnum(raw string, lookup func(string) (int, bool)) (domain.FieldValue, bool) {
	if raw == "" {
		return domain.FieldValue{}, false
	}

	value := domain.FieldValue{Kind: domain.FieldKindEnum, Int: -1}
	if idPart, name, found := strings.Cut(raw, ":"); found {
		id, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
		if err != nil {
			return domain.FieldValue{}, false
		}
		value.Int = id
		value.Str = strings.TrimSpace(name)
		return value, true
	}

	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		value.Int = id
		return value, true
	}

	value.Str = raw
	if lookup != nil {
		if id, ok := lookup(raw); ok {
			value.Int = int64(id)
		}
	}
	return value, true
}

// ParseBytes decodes whitespace- or dash-separated hex byte tokens. Tokens of
// more than two digits are accepted when their length is even.
func ParseBytes(raw string) ([]byte, error) {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-'
	})

	out := make([]byte, 0, len(tokens))
	for _, token := range tokens {
		decoded, err := hex.DecodeString(token)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded...)
	}
	return out, nil
}

// FormatBytes renders a payload as upper-case space-separated hex bytes.
func FormatBytes(payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(payload) * 3)
	for i, c := range payload {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.ToUpper(hex.EncodeToString([]byte{c})))
	}
	return b.String()
}
