package registry

import (
	"math/big"

	"github.com/knakk/sparqleval"
	"github.com/knakk/sparqleval/expr"
	"github.com/shopspring/decimal"
)

const (
	OpAdd    expr.Operator = "+"
	OpSub    expr.Operator = "-"
	OpMul    expr.Operator = "*"
	OpDiv    expr.Operator = "/"
	OpUMinus expr.Operator = "UMINUS"
	OpUPlus  expr.Operator = "UPLUS"
)

func registerArithmetic(b *builder) {
	b.registerNumeric2(OpAdd, func(a, c sparqleval.TypedValue) (sparqleval.Term, error) {
		return numericOp(a, c, func(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) },
			func(x, y decimal.Decimal) decimal.Decimal { return x.Add(y) },
			func(x, y float64) float64 { return x + y })
	})
	b.registerNumeric2(OpSub, func(a, c sparqleval.TypedValue) (sparqleval.Term, error) {
		return numericOp(a, c, func(x, y *big.Int) *big.Int { return new(big.Int).Sub(x, y) },
			func(x, y decimal.Decimal) decimal.Decimal { return x.Sub(y) },
			func(x, y float64) float64 { return x - y })
	})
	b.registerNumeric2(OpMul, func(a, c sparqleval.TypedValue) (sparqleval.Term, error) {
		return numericOp(a, c, func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) },
			func(x, y decimal.Decimal) decimal.Decimal { return x.Mul(y) },
			func(x, y float64) float64 { return x * y })
	})

	// Division is not registerNumeric2: per spec §3, integer/integer
	// promotes to decimal rather than staying integer, so the
	// (integer, integer) tuple must be registered by hand instead of
	// picking up the generic same-tag-in-same-tag-out helper.
	b.register(OpDiv, []sparqleval.TypeTag{sparqleval.TagInteger, sparqleval.TagInteger}, func(args []sparqleval.Term) (sparqleval.Term, error) {
		a, c := sparqleval.TypedValueOf(args[0]), sparqleval.TypedValueOf(args[1])
		if c.Int.Sign() == 0 {
			return nil, sparqleval.NewInvalidArgumentTypesError(string(OpDiv), []sparqleval.TypeTag{a.Tag, c.Tag}, args)
		}
		res := decimal.NewFromBigInt(a.Int, 0).DivRound(decimal.NewFromBigInt(c.Int, 0), 34)
		return sparqleval.TypedValue{Tag: sparqleval.TagDecimal, Dec: res}.AsTerm(), nil
	})
	b.register(OpDiv, []sparqleval.TypeTag{sparqleval.TagDecimal, sparqleval.TagDecimal}, func(args []sparqleval.Term) (sparqleval.Term, error) {
		a, c := sparqleval.TypedValueOf(args[0]), sparqleval.TypedValueOf(args[1])
		if c.Dec.IsZero() {
			return nil, sparqleval.NewInvalidArgumentTypesError(string(OpDiv), []sparqleval.TypeTag{a.Tag, c.Tag}, args)
		}
		return sparqleval.TypedValue{Tag: sparqleval.TagDecimal, Dec: a.Dec.DivRound(c.Dec, 34)}.AsTerm(), nil
	})
	b.register(OpDiv, []sparqleval.TypeTag{sparqleval.TagFloat, sparqleval.TagFloat}, func(args []sparqleval.Term) (sparqleval.Term, error) {
		a, c := sparqleval.TypedValueOf(args[0]), sparqleval.TypedValueOf(args[1])
		return sparqleval.TypedValue{Tag: sparqleval.TagFloat, Float32: a.Float32 / c.Float32}.AsTerm(), nil
	})
	b.register(OpDiv, []sparqleval.TypeTag{sparqleval.TagDouble, sparqleval.TagDouble}, func(args []sparqleval.Term) (sparqleval.Term, error) {
		a, c := sparqleval.TypedValueOf(args[0]), sparqleval.TypedValueOf(args[1])
		return sparqleval.TypedValue{Tag: sparqleval.TagDouble, Float64: a.Float64 / c.Float64}.AsTerm(), nil
	})

	b.registerNumeric1(OpUMinus, func(v sparqleval.TypedValue) (sparqleval.Term, error) {
		return negate(v), nil
	})
	b.registerNumeric1(OpUPlus, func(v sparqleval.TypedValue) (sparqleval.Term, error) {
		return v.AsTerm(), nil
	})
}

// numericOp applies whichever of the three closures matches v's shared
// tag. Both operands are guaranteed the same tag because registerNumeric2
// (and Resolve's promotion retry) only ever call a same-tag entry.
func numericOp(
	a, c sparqleval.TypedValue,
	onInt func(x, y *big.Int) *big.Int,
	onDec func(x, y decimal.Decimal) decimal.Decimal,
	onFloat func(x, y float64) float64,
) (sparqleval.Term, error) {
	switch a.Tag {
	case sparqleval.TagInteger:
		return sparqleval.TypedValue{Tag: sparqleval.TagInteger, Int: onInt(a.Int, c.Int)}.AsTerm(), nil
	case sparqleval.TagDecimal:
		return sparqleval.TypedValue{Tag: sparqleval.TagDecimal, Dec: onDec(a.Dec, c.Dec)}.AsTerm(), nil
	case sparqleval.TagFloat:
		return sparqleval.TypedValue{Tag: sparqleval.TagFloat, Float32: float32(onFloat(float64(a.Float32), float64(c.Float32)))}.AsTerm(), nil
	default:
		return sparqleval.TypedValue{Tag: sparqleval.TagDouble, Float64: onFloat(a.Float64, c.Float64)}.AsTerm(), nil
	}
}

func negate(v sparqleval.TypedValue) sparqleval.Term {
	switch v.Tag {
	case sparqleval.TagInteger:
		return sparqleval.TypedValue{Tag: sparqleval.TagInteger, Int: new(big.Int).Neg(v.Int)}.AsTerm()
	case sparqleval.TagDecimal:
		return sparqleval.TypedValue{Tag: sparqleval.TagDecimal, Dec: v.Dec.Neg()}.AsTerm()
	case sparqleval.TagFloat:
		return sparqleval.TypedValue{Tag: sparqleval.TagFloat, Float32: -v.Float32}.AsTerm()
	default:
		return sparqleval.TypedValue{Tag: sparqleval.TagDouble, Float64: -v.Float64}.AsTerm()
	}
}
