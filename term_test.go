package sparqleval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameTerm(t *testing.T) {
	tests := []struct {
		name string
		a, b Term
		want bool
	}{
		{"identical named nodes", NamedNode{IRI: "http://a"}, NamedNode{IRI: "http://a"}, true},
		{"different named nodes", NamedNode{IRI: "http://a"}, NamedNode{IRI: "http://b"}, false},
		{"identical blank nodes", BlankNode{Label: "b1"}, BlankNode{Label: "b1"}, true},
		{"different blank nodes", BlankNode{Label: "b1"}, BlankNode{Label: "b2"}, false},
		{"different variants", NamedNode{IRI: "http://a"}, BlankNode{Label: "http://a"}, false},
		{"integer vs decimal, same value", NewIntegerLiteral("1"), Literal{Lexical: "1.0", DatatypeIRI: "http://www.w3.org/2001/XMLSchema#decimal"}, false},
		{"equal plain literals", NewStringLiteral("x"), NewStringLiteral("x"), true},
		{"plain vs lang literal", NewStringLiteral("x"), NewLangLiteral("x", "en"), false},
		{"lang literals, different tags", NewLangLiteral("x", "en"), NewLangLiteral("x", "fr"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SameTerm(tt.a, tt.b))
		})
	}
}

func TestSameTermReflexiveSymmetricTransitive(t *testing.T) {
	terms := []Term{
		NamedNode{IRI: "http://example.org/a"},
		BlankNode{Label: "b0"},
		NewStringLiteral("hello"),
		NewIntegerLiteral("42"),
		NewLangLiteral("bonjour", "fr"),
	}
	for _, term := range terms {
		assert.True(t, SameTerm(term, term), "sameTerm must be reflexive for %v", term)
	}
	for _, a := range terms {
		for _, b := range terms {
			assert.Equal(t, SameTerm(a, b), SameTerm(b, a), "sameTerm must be symmetric for %v, %v", a, b)
		}
	}
	for _, a := range terms {
		for _, b := range terms {
			for _, c := range terms {
				if SameTerm(a, b) && SameTerm(b, c) {
					assert.True(t, SameTerm(a, c), "sameTerm must be transitive for %v, %v, %v", a, b, c)
				}
			}
		}
	}
}

func TestIsIRIBlankLiteral(t *testing.T) {
	n := NamedNode{IRI: "http://a"}
	b := BlankNode{Label: "x"}
	l := NewStringLiteral("s")

	assert.True(t, IsIRI(n))
	assert.False(t, IsIRI(b))
	assert.False(t, IsIRI(l))

	assert.True(t, IsBlank(b))
	assert.False(t, IsBlank(n))

	assert.True(t, IsLiteral(l))
	assert.False(t, IsLiteral(n))
}

func TestLiteralString(t *testing.T) {
	tests := []struct {
		name string
		lit  Literal
		want string
	}{
		{"plain string", NewStringLiteral("hi"), `"hi"`},
		{"lang string", NewLangLiteral("hi", "en"), `"hi"@en`},
		{"typed literal", NewIntegerLiteral("7"), `"7"^^<` + XSDInteger + `>`},
		{"escapes quotes and backslashes", NewStringLiteral(`a"b\c`), `"a\"b\\c"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.lit.String())
		})
	}
}
