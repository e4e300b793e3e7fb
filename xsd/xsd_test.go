package xsd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIRIString(t *testing.T) {
	assert.Equal(t, "<http://www.w3.org/2001/XMLSchema#integer>", Integer.String())
}

func TestIsIntegerSubtype(t *testing.T) {
	assert.True(t, IsIntegerSubtype(Integer.IRI))
	assert.True(t, IsIntegerSubtype("http://www.w3.org/2001/XMLSchema#byte"))
	assert.True(t, IsIntegerSubtype("http://www.w3.org/2001/XMLSchema#positiveInteger"))
	assert.False(t, IsIntegerSubtype(Decimal.IRI))
	assert.False(t, IsIntegerSubtype("http://example.org/notAType"))
}

func TestAllIntegerSubtypesContainsIntegerItself(t *testing.T) {
	all := AllIntegerSubtypes()
	assert.Contains(t, all, Integer.IRI)
	assert.Len(t, all, 13)
}
