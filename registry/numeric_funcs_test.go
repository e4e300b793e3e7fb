package registry

import (
	"testing"

	"github.com/knakk/sparqleval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbs(t *testing.T) {
	table := Default()
	result, err := table.Resolve(OpAbs, []sparqleval.Term{sparqleval.NewIntegerLiteral("-5")})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewIntegerLiteral("5")))
}

func TestRoundCeilFloor(t *testing.T) {
	table := Default()
	decVal := sparqleval.Literal{Lexical: "2.4", DatatypeIRI: "http://www.w3.org/2001/XMLSchema#decimal"}

	result, err := table.Resolve(OpRound, []sparqleval.Term{decVal})
	require.NoError(t, err)
	assert.Equal(t, sparqleval.TagDecimal, sparqleval.TypedValueOf(result).Tag)
	assert.True(t, sparqleval.TypedValueOf(result).Dec.Equal(sparqleval.TypedValueOf(sparqleval.Literal{Lexical: "2", DatatypeIRI: "http://www.w3.org/2001/XMLSchema#decimal"}).Dec))

	result, err = table.Resolve(OpCeil, []sparqleval.Term{decVal})
	require.NoError(t, err)
	assert.True(t, sparqleval.TypedValueOf(result).Dec.Equal(sparqleval.TypedValueOf(sparqleval.Literal{Lexical: "3", DatatypeIRI: "http://www.w3.org/2001/XMLSchema#decimal"}).Dec))

	result, err = table.Resolve(OpFloor, []sparqleval.Term{decVal})
	require.NoError(t, err)
	assert.True(t, sparqleval.TypedValueOf(result).Dec.Equal(sparqleval.TypedValueOf(sparqleval.Literal{Lexical: "2", DatatypeIRI: "http://www.w3.org/2001/XMLSchema#decimal"}).Dec))
}

// ROUND's half-case rounds toward positive infinity (fn:round), not away
// from zero: ROUND(-2.5) is -2, never -3.
func TestRoundHalfCaseRoundsTowardPositiveInfinity(t *testing.T) {
	table := Default()

	decVal := sparqleval.Literal{Lexical: "-2.5", DatatypeIRI: "http://www.w3.org/2001/XMLSchema#decimal"}
	result, err := table.Resolve(OpRound, []sparqleval.Term{decVal})
	require.NoError(t, err)
	want := sparqleval.TypedValueOf(sparqleval.Literal{Lexical: "-2", DatatypeIRI: "http://www.w3.org/2001/XMLSchema#decimal"}).Dec
	assert.True(t, sparqleval.TypedValueOf(result).Dec.Equal(want), "ROUND(-2.5) must be -2")

	dblVal := sparqleval.Literal{Lexical: "-2.5E0", DatatypeIRI: "http://www.w3.org/2001/XMLSchema#double"}
	result, err = table.Resolve(OpRound, []sparqleval.Term{dblVal})
	require.NoError(t, err)
	assert.Equal(t, float64(-2), sparqleval.TypedValueOf(result).Float64)

	posHalf := sparqleval.Literal{Lexical: "2.5", DatatypeIRI: "http://www.w3.org/2001/XMLSchema#decimal"}
	result, err = table.Resolve(OpRound, []sparqleval.Term{posHalf})
	require.NoError(t, err)
	wantPos := sparqleval.TypedValueOf(sparqleval.Literal{Lexical: "3", DatatypeIRI: "http://www.w3.org/2001/XMLSchema#decimal"}).Dec
	assert.True(t, sparqleval.TypedValueOf(result).Dec.Equal(wantPos))
}

func TestRoundIntegerIsNoop(t *testing.T) {
	table := Default()
	n := sparqleval.NewIntegerLiteral("7")
	result, err := table.Resolve(OpRound, []sparqleval.Term{n})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, n))
}
