package registry

import (
	"github.com/knakk/sparqleval"
	"github.com/knakk/sparqleval/expr"
)

const (
	OpStr         expr.Operator = "STR"
	OpLang        expr.Operator = "LANG"
	OpDatatype    expr.Operator = "DATATYPE"
	OpIsIRI       expr.Operator = "isIRI"
	OpIsBlank     expr.Operator = "isBLANK"
	OpIsLiteral   expr.Operator = "isLITERAL"
	OpIsNumeric   expr.Operator = "isNUMERIC"
	OpLangMatches expr.Operator = "LANGMATCHES"
)

// allTags is every TypeTag a Term's typed-value view can classify as.
// Term-inspection functions accept an operand of any kind, so they are
// registered once per tag here rather than picking specific tuples the
// way arithmetic and comparison operators do.
var allTags = []sparqleval.TypeTag{
	sparqleval.TagString, sparqleval.TagLangString, sparqleval.TagBoolean,
	sparqleval.TagInteger, sparqleval.TagDecimal, sparqleval.TagFloat, sparqleval.TagDouble,
	sparqleval.TagDateTime, sparqleval.TagNonLexical, sparqleval.TagOther,
}

func (b *builder) registerAny1(op expr.Operator, impl Implementation) {
	for _, tag := range allTags {
		b.register(op, []sparqleval.TypeTag{tag}, impl)
	}
}

func registerTermFuncs(b *builder) {
	b.registerAny1(OpStr, func(args []sparqleval.Term) (sparqleval.Term, error) {
		switch t := args[0].(type) {
		case sparqleval.NamedNode:
			return sparqleval.NewStringLiteral(t.IRI), nil
		case sparqleval.Literal:
			return sparqleval.NewStringLiteral(t.Lexical), nil
		default:
			return sparqleval.NewStringLiteral(args[0].String()), nil
		}
	})

	b.registerAny1(OpLang, func(args []sparqleval.Term) (sparqleval.Term, error) {
		lit, ok := args[0].(sparqleval.Literal)
		if !ok {
			return sparqleval.NewStringLiteral(""), nil
		}
		return sparqleval.NewStringLiteral(lit.Lang), nil
	})

	b.registerAny1(OpDatatype, func(args []sparqleval.Term) (sparqleval.Term, error) {
		lit, ok := args[0].(sparqleval.Literal)
		if !ok {
			return nil, sparqleval.NewInvalidArgumentTypesError(string(OpDatatype), []sparqleval.TypeTag{sparqleval.TypedValueOf(args[0]).Tag}, args)
		}
		if lit.Lang != "" {
			return sparqleval.NamedNode{IRI: sparqleval.RDFLangString}, nil
		}
		return sparqleval.NamedNode{IRI: lit.DatatypeIRI}, nil
	})

	b.registerAny1(OpIsIRI, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return sparqleval.NewBooleanLiteral(sparqleval.IsIRI(args[0])), nil
	})
	b.registerAny1(OpIsBlank, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return sparqleval.NewBooleanLiteral(sparqleval.IsBlank(args[0])), nil
	})
	b.registerAny1(OpIsLiteral, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return sparqleval.NewBooleanLiteral(sparqleval.IsLiteral(args[0])), nil
	})
	b.registerAny1(OpIsNumeric, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return sparqleval.NewBooleanLiteral(sparqleval.TypedValueOf(args[0]).Tag.IsNumeric()), nil
	})

	langMatches := func(args []sparqleval.Term) (sparqleval.Term, error) {
		tag := sparqleval.TypedValueOf(args[0]).Str
		want := sparqleval.TypedValueOf(args[1]).Str
		return sparqleval.NewBooleanLiteral(langMatches(tag, want)), nil
	}
	b.registerAnyStringLike(OpLangMatches, 2, langMatches)
}

// langMatches implements RFC 4647 basic filtering as used by SPARQL's
// LANGMATCHES: "*" matches any non-empty tag, and otherwise want matches
// tag if they are equal case-insensitively or want is a case-insensitive
// prefix of tag ending on a '-' boundary.
func langMatches(tag, want string) bool {
	if want == "*" {
		return tag != ""
	}
	if len(want) > len(tag) {
		return false
	}
	if !equalFold(tag[:len(want)], want) {
		return false
	}
	return len(tag) == len(want) || tag[len(want)] == '-'
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
