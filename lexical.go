package sparqleval

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// isDigit mirrors the rdf package's hand-rolled lexer's rune classifier:
// XSD numeric grammars are ASCII-digit only, never unicode.IsDigit.
func isDigit(r byte) bool { return r >= '0' && r <= '9' }

// parseBoolean implements the xsd:boolean lexical space: "true", "false",
// "1", "0". Anything else is ill-typed.
func parseBoolean(lex string) (bool, bool) {
	switch lex {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

// parseInteger validates and parses the xsd:integer lexical space: an
// optional sign followed by one or more ASCII digits, with no leading
// zero unless the value is exactly "0". This mirrors the digit-run loop
// in the rdf package's lexNumber, but validates a complete string rather
// than streaming tokens off a reader.
func parseInteger(lex string) (*big.Int, bool) {
	s := lex
	if s == "" {
		return nil, false
	}
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" {
		return nil, false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return nil, false
		}
	}
	if len(s) > 1 && s[0] == '0' {
		return nil, false
	}
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, false
	}
	if neg {
		i.Neg(i)
	}
	return i, true
}

// parseDecimal validates and parses the xsd:decimal lexical space:
// parseInteger's grammar (optional sign, digits with no leading zero
// unless the value is exactly "0") plus an optional '.' followed by one
// or more trailing digits. The fractional part is optional, so "210" and
// "3" are both valid xsd:decimal lexical forms, same as "0.0" or "3.14".
func parseDecimal(lex string) (decimal.Decimal, bool) {
	s := lex
	if s == "" {
		return decimal.Decimal{}, false
	}
	body := s
	if body[0] == '+' || body[0] == '-' {
		body = body[1:]
	}
	intPart, fracPart := body, ""
	if dot := strings.IndexByte(body, '.'); dot >= 0 {
		intPart, fracPart = body[:dot], body[dot+1:]
		if fracPart == "" {
			return decimal.Decimal{}, false
		}
		for i := 0; i < len(fracPart); i++ {
			if !isDigit(fracPart[i]) {
				return decimal.Decimal{}, false
			}
		}
	}
	if intPart == "" {
		return decimal.Decimal{}, false
	}
	for i := 0; i < len(intPart); i++ {
		if !isDigit(intPart[i]) {
			return decimal.Decimal{}, false
		}
	}
	if len(intPart) > 1 && intPart[0] == '0' {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// parseFloatLike validates and parses the xsd:float/xsd:double lexical
// space, which extends xsd:decimal's grammar with an optional exponent
// and the special tokens INF, -INF, NaN.
func parseFloatLike(lex string) (float64, bool) {
	switch lex {
	case "INF", "+INF":
		return math.Inf(1), true
	case "-INF":
		return math.Inf(-1), true
	case "NaN":
		return math.NaN(), true
	}
	if lex == "" {
		return 0, false
	}
	body := lex
	if body[0] == '+' || body[0] == '-' {
		body = body[1:]
	}
	if body == "" {
		return 0, false
	}
	sawDigit, sawDot, sawExp := false, false, false
	i := 0
	for ; i < len(body); i++ {
		c := body[i]
		switch {
		case isDigit(c):
			sawDigit = true
		case c == '.' && !sawDot && !sawExp:
			sawDot = true
		case (c == 'e' || c == 'E') && !sawExp && sawDigit:
			sawExp = true
			if i+1 < len(body) && (body[i+1] == '+' || body[i+1] == '-') {
				i++
			}
			if i+1 >= len(body) || !isDigit(body[i+1]) {
				return 0, false
			}
		default:
			return 0, false
		}
	}
	if !sawDigit {
		return 0, false
	}
	f, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseDateTime validates and parses the xsd:dateTime lexical space
// (ISO 8601 extended, optional timezone offset or "Z").
func parseDateTime(lex string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, lex); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatDecimal(d decimal.Decimal) string {
	s := d.String()
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func formatFloatLike(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	default:
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}
}

func formatDateTime(t time.Time) string {
	if t.Location() == time.UTC {
		return t.Format("2006-01-02T15:04:05.999999999Z")
	}
	return t.Format(time.RFC3339Nano)
}

// debugf formats an operand list for error context payloads.
func debugf(terms []Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = debugString(t)
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
