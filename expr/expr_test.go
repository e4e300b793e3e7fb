package expr

import (
	"testing"

	"github.com/knakk/sparqleval"
	"github.com/stretchr/testify/assert"
)

func TestMappingLookupAndBound(t *testing.T) {
	m := NewMapping(map[string]sparqleval.Term{
		"x": sparqleval.NewStringLiteral("hi"),
	})

	v, ok := m.Lookup("x")
	assert.True(t, ok)
	assert.True(t, sparqleval.SameTerm(v, sparqleval.NewStringLiteral("hi")))
	assert.True(t, m.Bound("x"))

	_, ok = m.Lookup("y")
	assert.False(t, ok)
	assert.False(t, m.Bound("y"))
}

func TestZeroValueMappingIsEmpty(t *testing.T) {
	var m Mapping
	_, ok := m.Lookup("x")
	assert.False(t, ok)
	assert.False(t, m.Bound("x"))
}

func TestMappingWithDoesNotMutateOriginal(t *testing.T) {
	base := NewMapping(map[string]sparqleval.Term{"x": sparqleval.NewIntegerLiteral("1")})
	extended := base.With("y", sparqleval.NewIntegerLiteral("2"))

	assert.False(t, base.Bound("y"))
	assert.True(t, extended.Bound("x"))
	assert.True(t, extended.Bound("y"))
}

func TestExpressionNodeKindsSatisfyInterface(t *testing.T) {
	var exprs = []Expression{
		Variable{Name: "x"},
		TermExpr{Term: sparqleval.NewStringLiteral("x")},
		OperatorExpr{Op: "+", Args: []Expression{Variable{Name: "a"}, Variable{Name: "b"}}},
		Named{IRI: "http://example.org/f", Args: nil},
		Existence{Algebra: struct{}{}, Negated: true},
		Aggregate{Name: "SUM", Distinct: false, Arg: Variable{Name: "x"}},
	}
	assert.Len(t, exprs, 6)
}
