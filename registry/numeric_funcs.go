package registry

import (
	"math"
	"math/big"

	"github.com/knakk/sparqleval"
	"github.com/knakk/sparqleval/expr"
	"github.com/shopspring/decimal"
)

const (
	OpAbs   expr.Operator = "ABS"
	OpRound expr.Operator = "ROUND"
	OpCeil  expr.Operator = "CEIL"
	OpFloor expr.Operator = "FLOOR"
)

func registerNumericFuncs(b *builder) {
	b.registerNumeric1(OpAbs, func(v sparqleval.TypedValue) (sparqleval.Term, error) {
		switch v.Tag {
		case sparqleval.TagInteger:
			return sparqleval.TypedValue{Tag: sparqleval.TagInteger, Int: new(big.Int).Abs(v.Int)}.AsTerm(), nil
		case sparqleval.TagDecimal:
			return sparqleval.TypedValue{Tag: sparqleval.TagDecimal, Dec: v.Dec.Abs()}.AsTerm(), nil
		case sparqleval.TagFloat:
			return sparqleval.TypedValue{Tag: sparqleval.TagFloat, Float32: float32(math.Abs(float64(v.Float32)))}.AsTerm(), nil
		default:
			return sparqleval.TypedValue{Tag: sparqleval.TagDouble, Float64: math.Abs(v.Float64)}.AsTerm(), nil
		}
	})

	// ROUND rounds half toward positive infinity to the nearest integer,
	// per XPath fn:round (so ROUND(-2.5) is -2, not -3), and preserves
	// the operand's numeric tag (ROUND of a decimal is a decimal, not an
	// integer).
	b.registerNumeric1(OpRound, func(v sparqleval.TypedValue) (sparqleval.Term, error) {
		return roundLike(v, roundHalfUpFloat, roundHalfUpDecimal)
	})
	b.registerNumeric1(OpCeil, func(v sparqleval.TypedValue) (sparqleval.Term, error) {
		return roundLike(v, math.Ceil, func(d decimal.Decimal, _ int32) decimal.Decimal { return d.Ceil() })
	})
	b.registerNumeric1(OpFloor, func(v sparqleval.TypedValue) (sparqleval.Term, error) {
		return roundLike(v, math.Floor, func(d decimal.Decimal, _ int32) decimal.Decimal { return d.Floor() })
	})
}

// roundHalfUpFloat rounds f to the nearest integer, with .5 cases
// rounding toward positive infinity rather than away from zero
// (math.Round rounds -2.5 to -3; fn:round requires -2).
func roundHalfUpFloat(f float64) float64 {
	return math.Floor(f + 0.5)
}

var half = decimal.New(5, -1)

// roundHalfUpDecimal mirrors roundHalfUpFloat for decimal.Decimal: add
// one half then floor, rather than decimal.Decimal.Round's
// half-away-from-zero behavior.
func roundHalfUpDecimal(d decimal.Decimal, _ int32) decimal.Decimal {
	return d.Add(half).Floor()
}

func roundLike(v sparqleval.TypedValue, onFloat func(float64) float64, onDecimal func(decimal.Decimal, int32) decimal.Decimal) (sparqleval.Term, error) {
	switch v.Tag {
	case sparqleval.TagInteger:
		return v.AsTerm(), nil
	case sparqleval.TagDecimal:
		return sparqleval.TypedValue{Tag: sparqleval.TagDecimal, Dec: onDecimal(v.Dec, 0)}.AsTerm(), nil
	case sparqleval.TagFloat:
		return sparqleval.TypedValue{Tag: sparqleval.TagFloat, Float32: float32(onFloat(float64(v.Float32)))}.AsTerm(), nil
	default:
		return sparqleval.TypedValue{Tag: sparqleval.TagDouble, Float64: onFloat(v.Float64)}.AsTerm(), nil
	}
}
