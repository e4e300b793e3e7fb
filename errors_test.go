package sparqleval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOfRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"unbound variable", NewUnboundVariableError("x"), KindUnboundVariable},
		{"invalid argument types", NewInvalidArgumentTypesError("+", []TypeTag{TagString}, []Term{NewStringLiteral("x")}), KindInvalidArgumentTypes},
		{"invalid arity", NewInvalidArityError("IF", 3, 2), KindInvalidArity},
		{"invalid lexical form", NewInvalidLexicalFormError("=", NewIntegerLiteral("01")), KindInvalidLexicalForm},
		{"invalid compare", NewInvalidCompareError(NewStringLiteral("x"), NewBooleanLiteral(true)), KindInvalidCompare},
		{"ebv", NewEBVError(NamedNode{IRI: "http://a"}), KindEBV},
		{"coalesce", NewCoalesceError([]error{errors.New("a"), errors.New("b")}), KindCoalesce},
		{"in", NewInError([]error{errors.New("a")}), KindIn},
		{"unknown named operator", NewUnknownNamedOperatorError("http://example.org/f"), KindUnknownNamedOperator},
		{"unexpected aggregate", NewUnexpectedAggregateError("SUM"), KindUnexpectedAggregate},
		{"cancelled", NewCancelledError(errors.New("context canceled")), KindCancelled},
		{"cast", NewCastError("xsd:integer", NewStringLiteral("abc")), KindCast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			kind, ok := KindOf(tt.err)
			require.True(t, ok)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestKindOfUnknownErrorIsNotInTaxonomy(t *testing.T) {
	_, ok := KindOf(errors.New("some host-supplied error"))
	assert.False(t, ok)
}

func TestCoalesceErrorWrapsAllBranches(t *testing.T) {
	e1 := errors.New("branch one failed")
	e2 := errors.New("branch two failed")
	err := NewCoalesceError([]error{e1, e2})
	assert.True(t, errors.Is(err, e1))
	assert.True(t, errors.Is(err, e2))
}

func TestInErrorWrapsAllCandidates(t *testing.T) {
	e1 := errors.New("candidate one failed")
	err := NewInError([]error{e1})
	assert.True(t, errors.Is(err, e1))
}
