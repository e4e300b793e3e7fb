package sparqleval

import (
	"math/big"
	"time"

	"github.com/knakk/sparqleval/xsd"
	"github.com/shopspring/decimal"
)

// TypeTag classifies a Term's typed-value view for the purposes of
// overload dispatch (registry package) and ordering (compare.go).
type TypeTag int

const (
	TagString TypeTag = iota
	TagLangString
	TagBoolean
	TagInteger
	TagDecimal
	TagFloat
	TagDouble
	TagDateTime
	TagNonLexical
	TagOther
)

func (t TypeTag) String() string {
	switch t {
	case TagString:
		return "string"
	case TagLangString:
		return "langString"
	case TagBoolean:
		return "boolean"
	case TagInteger:
		return "integer"
	case TagDecimal:
		return "decimal"
	case TagFloat:
		return "float"
	case TagDouble:
		return "double"
	case TagDateTime:
		return "dateTime"
	case TagNonLexical:
		return "nonLexical"
	default:
		return "other"
	}
}

// IsNumeric reports whether t is one of the four numeric tags.
func (t TypeTag) IsNumeric() bool {
	switch t {
	case TagInteger, TagDecimal, TagFloat, TagDouble:
		return true
	default:
		return false
	}
}

// numericRank orders the numeric lattice integer < decimal < float < double.
func (t TypeTag) numericRank() int {
	switch t {
	case TagInteger:
		return 0
	case TagDecimal:
		return 1
	case TagFloat:
		return 2
	case TagDouble:
		return 3
	default:
		return -1
	}
}

// TypedValue is the typed-value view of a Term: its TypeTag plus the
// concrete payload. Exactly one payload field is meaningful for a given
// Tag; the rest are zero. Source always points back at the Term the view
// was computed from, for error context and for String/Lang/Datatype
// regular functions that need the original lexical form.
type TypedValue struct {
	Tag TypeTag

	Str     string // TagString, TagLangString, TagNonLexical, TagOther
	Lang    string // TagLangString
	Bool    bool   // TagBoolean
	Int     *big.Int
	Dec     decimal.Decimal
	Float32 float32
	Float64 float64
	Time    time.Time

	Source Term
}

// JoinNumeric returns the join of two numeric tags in the lattice
// integer < decimal < float < double. The second return value is false
// if either tag is not numeric.
func JoinNumeric(a, b TypeTag) (TypeTag, bool) {
	ra, rb := a.numericRank(), b.numericRank()
	if ra < 0 || rb < 0 {
		return TagOther, false
	}
	if ra >= rb {
		return a, true
	}
	return b, true
}

// TypedValueOf computes the typed-value view of a term by inspecting its
// datatype IRI (for literals) or variant (for IRIs/blank nodes, which
// always classify as TagOther).
func TypedValueOf(t Term) TypedValue {
	lit, ok := t.(Literal)
	if !ok {
		return TypedValue{Tag: TagOther, Source: t}
	}
	if lit.Lang != "" {
		return TypedValue{Tag: TagLangString, Str: lit.Lexical, Lang: lit.Lang, Source: t}
	}
	switch lit.DatatypeIRI {
	case XSDString:
		return TypedValue{Tag: TagString, Str: lit.Lexical, Source: t}
	case xsd.Boolean.IRI:
		b, ok := parseBoolean(lit.Lexical)
		if !ok {
			return TypedValue{Tag: TagNonLexical, Str: lit.Lexical, Source: t}
		}
		return TypedValue{Tag: TagBoolean, Bool: b, Source: t}
	case xsd.DateTime.IRI:
		tm, ok := parseDateTime(lit.Lexical)
		if !ok {
			return TypedValue{Tag: TagNonLexical, Str: lit.Lexical, Source: t}
		}
		return TypedValue{Tag: TagDateTime, Time: tm, Source: t}
	case xsd.Decimal.IRI:
		d, ok := parseDecimal(lit.Lexical)
		if !ok {
			return TypedValue{Tag: TagNonLexical, Str: lit.Lexical, Source: t}
		}
		return TypedValue{Tag: TagDecimal, Dec: d, Source: t}
	case xsd.Float.IRI:
		f, ok := parseFloatLike(lit.Lexical)
		if !ok {
			return TypedValue{Tag: TagNonLexical, Str: lit.Lexical, Source: t}
		}
		return TypedValue{Tag: TagFloat, Float32: float32(f), Source: t}
	case xsd.Double.IRI:
		f, ok := parseFloatLike(lit.Lexical)
		if !ok {
			return TypedValue{Tag: TagNonLexical, Str: lit.Lexical, Source: t}
		}
		return TypedValue{Tag: TagDouble, Float64: f, Source: t}
	default:
		if xsd.IsIntegerSubtype(lit.DatatypeIRI) {
			i, ok := parseInteger(lit.Lexical)
			if !ok {
				return TypedValue{Tag: TagNonLexical, Str: lit.Lexical, Source: t}
			}
			return TypedValue{Tag: TagInteger, Int: i, Source: t}
		}
		return TypedValue{Tag: TagOther, Str: lit.Lexical, Source: t}
	}
}

// AsTerm reconstructs the Literal a TypedValue denotes. It is the
// inverse of TypedValueOf for the numeric, boolean, string, and dateTime
// tags; calling it on TagOther or TagNonLexical returns Source unchanged.
func (v TypedValue) AsTerm() Term {
	switch v.Tag {
	case TagString:
		return NewStringLiteral(v.Str)
	case TagLangString:
		return NewLangLiteral(v.Str, v.Lang)
	case TagBoolean:
		return NewBooleanLiteral(v.Bool)
	case TagInteger:
		return Literal{Lexical: v.Int.String(), DatatypeIRI: xsd.Integer.IRI}
	case TagDecimal:
		return Literal{Lexical: formatDecimal(v.Dec), DatatypeIRI: xsd.Decimal.IRI}
	case TagFloat:
		return Literal{Lexical: formatFloatLike(float64(v.Float32), 32), DatatypeIRI: xsd.Float.IRI}
	case TagDouble:
		return Literal{Lexical: formatFloatLike(v.Float64, 64), DatatypeIRI: xsd.Double.IRI}
	case TagDateTime:
		return Literal{Lexical: formatDateTime(v.Time), DatatypeIRI: xsd.DateTime.IRI}
	default:
		return v.Source
	}
}

// toDecimal widens an integer typed value to decimal.Decimal. Called
// only with v.Tag == TagInteger, since TagDecimal needs no widening and
// every other numeric tag widens through toFloat64 instead.
func toDecimal(v TypedValue) decimal.Decimal {
	if v.Tag == TagDecimal {
		return v.Dec
	}
	return decimal.NewFromBigInt(v.Int, 0)
}

// toFloat64 widens any numeric typed value to float64, going through
// big.Float for the integer tag and decimal.Decimal's exact-to-inexact
// conversion for the decimal tag.
func toFloat64(v TypedValue) float64 {
	switch v.Tag {
	case TagInteger:
		f, _ := new(big.Float).SetInt(v.Int).Float64()
		return f
	case TagDecimal:
		f, _ := v.Dec.Float64()
		return f
	case TagFloat:
		return float64(v.Float32)
	default:
		return v.Float64
	}
}
