package registry

import (
	"testing"

	"github.com/knakk/sparqleval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermFuncStr(t *testing.T) {
	table := Default()

	result, err := table.Resolve(OpStr, []sparqleval.Term{sparqleval.NamedNode{IRI: "http://a"}})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewStringLiteral("http://a")))

	result, err = table.Resolve(OpStr, []sparqleval.Term{sparqleval.NewIntegerLiteral("7")})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewStringLiteral("7")))
}

func TestTermFuncLangAndDatatype(t *testing.T) {
	table := Default()

	result, err := table.Resolve(OpLang, []sparqleval.Term{sparqleval.NewLangLiteral("hi", "en")})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewStringLiteral("en")))

	result, err = table.Resolve(OpLang, []sparqleval.Term{sparqleval.NewStringLiteral("hi")})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewStringLiteral("")))

	result, err = table.Resolve(OpDatatype, []sparqleval.Term{sparqleval.NewIntegerLiteral("1")})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NamedNode{IRI: sparqleval.XSDInteger}))

	result, err = table.Resolve(OpDatatype, []sparqleval.Term{sparqleval.NewLangLiteral("hi", "en")})
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NamedNode{IRI: sparqleval.RDFLangString}))

	_, err = table.Resolve(OpDatatype, []sparqleval.Term{sparqleval.NamedNode{IRI: "http://a"}})
	require.Error(t, err)
}

func TestTermFuncTypeChecks(t *testing.T) {
	table := Default()
	n := sparqleval.NamedNode{IRI: "http://a"}
	bnode := sparqleval.BlankNode{Label: "x"}
	lit := sparqleval.NewIntegerLiteral("1")

	assert.True(t, boolOf(t, table.Resolve(OpIsIRI, []sparqleval.Term{n})))
	assert.False(t, boolOf(t, table.Resolve(OpIsIRI, []sparqleval.Term{bnode})))
	assert.True(t, boolOf(t, table.Resolve(OpIsBlank, []sparqleval.Term{bnode})))
	assert.True(t, boolOf(t, table.Resolve(OpIsLiteral, []sparqleval.Term{lit})))
	assert.True(t, boolOf(t, table.Resolve(OpIsNumeric, []sparqleval.Term{lit})))
	assert.False(t, boolOf(t, table.Resolve(OpIsNumeric, []sparqleval.Term{n})))
}

func TestLangMatches(t *testing.T) {
	table := Default()

	assert.True(t, boolOf(t, table.Resolve(OpLangMatches, []sparqleval.Term{
		sparqleval.NewStringLiteral("en-US"), sparqleval.NewStringLiteral("en"),
	})))
	assert.True(t, boolOf(t, table.Resolve(OpLangMatches, []sparqleval.Term{
		sparqleval.NewStringLiteral("en-US"), sparqleval.NewStringLiteral("*"),
	})))
	assert.False(t, boolOf(t, table.Resolve(OpLangMatches, []sparqleval.Term{
		sparqleval.NewStringLiteral(""), sparqleval.NewStringLiteral("*"),
	})))
	assert.False(t, boolOf(t, table.Resolve(OpLangMatches, []sparqleval.Term{
		sparqleval.NewStringLiteral("fr"), sparqleval.NewStringLiteral("en"),
	})))
}
