package registry

import (
	"testing"

	"github.com/knakk/sparqleval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateTimeLiteral(lexical string) sparqleval.Term {
	return sparqleval.Literal{Lexical: lexical, DatatypeIRI: "http://www.w3.org/2001/XMLSchema#dateTime"}
}

func TestDateFieldExtractors(t *testing.T) {
	table := Default()
	dt := dateTimeLiteral("2024-03-15T13:45:30Z")

	result, err := table.Resolve(OpYear, []sparqleval.Term{dt})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewIntegerLiteral("2024")))

	result, err = table.Resolve(OpMonth, []sparqleval.Term{dt})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewIntegerLiteral("3")))

	result, err = table.Resolve(OpDay, []sparqleval.Term{dt})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewIntegerLiteral("15")))

	result, err = table.Resolve(OpHours, []sparqleval.Term{dt})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewIntegerLiteral("13")))

	result, err = table.Resolve(OpMinutes, []sparqleval.Term{dt})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewIntegerLiteral("45")))
}

func TestTZOnUTCIsZ(t *testing.T) {
	table := Default()
	dt := dateTimeLiteral("2024-03-15T13:45:30Z")

	result, err := table.Resolve(OpTZ, []sparqleval.Term{dt})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewStringLiteral("Z")))
}

func TestTZWithOffset(t *testing.T) {
	table := Default()
	dt := dateTimeLiteral("2024-03-15T13:45:30+02:00")

	result, err := table.Resolve(OpTZ, []sparqleval.Term{dt})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewStringLiteral("+02:00")))

	result, err = table.Resolve(OpTimezone, []sparqleval.Term{dt})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.TypedValue{Tag: sparqleval.TagString, Str: "PT2H"}.AsTerm()))
}
