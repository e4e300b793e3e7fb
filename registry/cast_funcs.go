package registry

import (
	"math"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/knakk/sparqleval"
	"github.com/knakk/sparqleval/expr"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// IRI()/URI() are intentionally absent from this table: resolving a
// relative IRI needs the host's ResolveIRI hook (spec §6), so package
// eval special-cases that operator instead of routing it through
// Resolve, the same way it handles NOW().
const (
	OpBNode   expr.Operator = "BNODE"
	OpStrDT   expr.Operator = "STRDT"
	OpStrLang expr.Operator = "STRLANG"
	OpUUID    expr.Operator = "UUID"
	OpStrUUID expr.Operator = "STRUUID"

	OpCastString   expr.Operator = "xsd:string"
	OpCastBoolean  expr.Operator = "xsd:boolean"
	OpCastInteger  expr.Operator = "xsd:integer"
	OpCastDecimal  expr.Operator = "xsd:decimal"
	OpCastFloat    expr.Operator = "xsd:float"
	OpCastDouble   expr.Operator = "xsd:double"
	OpCastDateTime expr.Operator = "xsd:dateTime"
)

func registerCastFuncs(b *builder) {
	// BNODE() mints a fresh, query-scoped blank node. Like UUID()/STRUUID()
	// it is deliberately non-deterministic, which SPARQL allows for these
	// three functions unlike NOW(), so it can live in the plain registry
	// rather than being special-cased in package eval.
	b.register(OpBNode, nil, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return sparqleval.BlankNode{Label: uuid.NewString()}, nil
	})

	for _, tag := range []sparqleval.TypeTag{sparqleval.TagString, sparqleval.TagLangString} {
		b.register(OpStrDT, []sparqleval.TypeTag{tag, sparqleval.TagOther}, func(args []sparqleval.Term) (sparqleval.Term, error) {
			nn, ok := args[1].(sparqleval.NamedNode)
			if !ok {
				return nil, sparqleval.NewInvalidArgumentTypesError(string(OpStrDT), nil, args)
			}
			return sparqleval.Literal{Lexical: stringArg(args[0]), DatatypeIRI: nn.IRI}, nil
		})
	}

	for _, tag := range []sparqleval.TypeTag{sparqleval.TagString, sparqleval.TagLangString} {
		b.register(OpStrLang, []sparqleval.TypeTag{tag, sparqleval.TagString}, func(args []sparqleval.Term) (sparqleval.Term, error) {
			return sparqleval.NewLangLiteral(stringArg(args[0]), stringArg(args[1])), nil
		})
	}

	b.register(OpUUID, nil, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return sparqleval.NamedNode{IRI: "urn:uuid:" + uuid.NewString()}, nil
	})
	b.register(OpStrUUID, nil, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return sparqleval.NewStringLiteral(uuid.NewString()), nil
	})

	b.registerAny1(OpCastString, func(args []sparqleval.Term) (sparqleval.Term, error) {
		s, err := cast.ToStringE(nativeValue(args[0]))
		if err != nil {
			return nil, sparqleval.NewCastError("xsd:string", args[0])
		}
		return sparqleval.NewStringLiteral(s), nil
	})
	b.registerAny1(OpCastBoolean, func(args []sparqleval.Term) (sparqleval.Term, error) {
		v, err := cast.ToBoolE(nativeValue(args[0]))
		if err != nil {
			return nil, sparqleval.NewCastError("xsd:boolean", args[0])
		}
		return sparqleval.NewBooleanLiteral(v), nil
	})
	b.registerAny1(OpCastInteger, func(args []sparqleval.Term) (sparqleval.Term, error) {
		i, ok := bigIntFromTypedValue(sparqleval.TypedValueOf(args[0]))
		if !ok {
			return nil, sparqleval.NewCastError("xsd:integer", args[0])
		}
		return sparqleval.TypedValue{Tag: sparqleval.TagInteger, Int: i}.AsTerm(), nil
	})
	b.registerAny1(OpCastDecimal, func(args []sparqleval.Term) (sparqleval.Term, error) {
		d, ok := decimalFromTypedValue(sparqleval.TypedValueOf(args[0]))
		if !ok {
			return nil, sparqleval.NewCastError("xsd:decimal", args[0])
		}
		return sparqleval.TypedValue{Tag: sparqleval.TagDecimal, Dec: d}.AsTerm(), nil
	})
	b.registerAny1(OpCastFloat, func(args []sparqleval.Term) (sparqleval.Term, error) {
		f, ok := float64FromTypedValue(sparqleval.TypedValueOf(args[0]))
		if !ok {
			return nil, sparqleval.NewCastError("xsd:float", args[0])
		}
		return sparqleval.TypedValue{Tag: sparqleval.TagFloat, Float32: float32(f)}.AsTerm(), nil
	})
	b.registerAny1(OpCastDouble, func(args []sparqleval.Term) (sparqleval.Term, error) {
		f, ok := float64FromTypedValue(sparqleval.TypedValueOf(args[0]))
		if !ok {
			return nil, sparqleval.NewCastError("xsd:double", args[0])
		}
		return sparqleval.TypedValue{Tag: sparqleval.TagDouble, Float64: f}.AsTerm(), nil
	})
	b.registerAny1(OpCastDateTime, func(args []sparqleval.Term) (sparqleval.Term, error) {
		v := sparqleval.TypedValueOf(args[0])
		if v.Tag != sparqleval.TagDateTime {
			return nil, sparqleval.NewCastError("xsd:dateTime", args[0])
		}
		return v.AsTerm(), nil
	})
}

// nativeValue extracts the Go-native payload spf13/cast understands from
// a TypedValue, so the xsd:string and xsd:boolean casts reuse cast's
// coercion matrix instead of hand-rolling it. The numeric casts do not
// use it; they convert through the *FromTypedValue helpers below.
func nativeValue(t sparqleval.Term) any {
	v := sparqleval.TypedValueOf(t)
	switch v.Tag {
	case sparqleval.TagBoolean:
		return v.Bool
	case sparqleval.TagInteger:
		return v.Int.String()
	case sparqleval.TagDecimal:
		return v.Dec.String()
	case sparqleval.TagFloat:
		return float64(v.Float32)
	case sparqleval.TagDouble:
		return v.Float64
	default:
		return v.Str
	}
}

// bigIntFromTypedValue converts v to an arbitrary-precision integer for
// an xsd:integer cast, truncating fractional numeric operands toward
// zero. String operands parse through big.Int.SetString directly rather
// than spf13/cast's int64-bounded ToInt64E, so a lexical form outside
// the int64 range casts without losing precision.
func bigIntFromTypedValue(v sparqleval.TypedValue) (*big.Int, bool) {
	switch v.Tag {
	case sparqleval.TagInteger:
		return v.Int, true
	case sparqleval.TagDecimal:
		return new(big.Int).SetString(v.Dec.Truncate(0).String(), 10)
	case sparqleval.TagFloat:
		return bigIntFromFloat(float64(v.Float32))
	case sparqleval.TagDouble:
		return bigIntFromFloat(v.Float64)
	case sparqleval.TagBoolean:
		if v.Bool {
			return big.NewInt(1), true
		}
		return big.NewInt(0), true
	case sparqleval.TagString, sparqleval.TagLangString:
		return new(big.Int).SetString(strings.TrimSpace(v.Str), 10)
	default:
		return nil, false
	}
}

func bigIntFromFloat(f float64) (*big.Int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	i, _ := big.NewFloat(math.Trunc(f)).Int(nil)
	return i, true
}

// decimalFromTypedValue converts v to an arbitrary-precision
// decimal.Decimal for an xsd:decimal cast. String operands parse
// through decimal.NewFromString directly rather than spf13/cast's
// float64-bounded ToFloat64E, so digits beyond float64 precision
// survive the cast.
func decimalFromTypedValue(v sparqleval.TypedValue) (decimal.Decimal, bool) {
	switch v.Tag {
	case sparqleval.TagDecimal:
		return v.Dec, true
	case sparqleval.TagInteger:
		return decimal.NewFromBigInt(v.Int, 0), true
	case sparqleval.TagFloat:
		return decimal.NewFromFloat(float64(v.Float32)), true
	case sparqleval.TagDouble:
		return decimal.NewFromFloat(v.Float64), true
	case sparqleval.TagBoolean:
		if v.Bool {
			return decimal.NewFromInt(1), true
		}
		return decimal.NewFromInt(0), true
	case sparqleval.TagString, sparqleval.TagLangString:
		d, err := decimal.NewFromString(strings.TrimSpace(v.Str))
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// float64FromTypedValue converts v to a float64 for an xsd:float/
// xsd:double cast. String operands parse through decimal.NewFromString
// first so a long decimal lexical form rounds to the nearest float64
// directly, instead of going through spf13/cast's own string-to-float64
// path.
func float64FromTypedValue(v sparqleval.TypedValue) (float64, bool) {
	switch v.Tag {
	case sparqleval.TagFloat:
		return float64(v.Float32), true
	case sparqleval.TagDouble:
		return v.Float64, true
	case sparqleval.TagInteger:
		f, _ := new(big.Float).SetInt(v.Int).Float64()
		return f, true
	case sparqleval.TagDecimal:
		f, _ := v.Dec.Float64()
		return f, true
	case sparqleval.TagBoolean:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case sparqleval.TagString, sparqleval.TagLangString:
		d, err := decimal.NewFromString(strings.TrimSpace(v.Str))
		if err != nil {
			return 0, false
		}
		f, _ := d.Float64()
		return f, true
	default:
		return 0, false
	}
}
