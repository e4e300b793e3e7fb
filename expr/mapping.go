package expr

import "github.com/knakk/sparqleval"

// Mapping is one solution mapping: a partial function from SPARQL
// variable name to RDF term, as produced by the query engine's binding
// iterator. The zero value is the empty mapping.
type Mapping struct {
	bindings map[string]sparqleval.Term
}

// NewMapping builds a Mapping from a plain map. The caller retains no
// reference obligations: NewMapping copies nothing, so mutating m after
// the call is visible through the returned Mapping, matching the "one
// mapping per evaluation call" lifecycle spec.md describes.
func NewMapping(m map[string]sparqleval.Term) Mapping {
	return Mapping{bindings: m}
}

// Lookup returns the term bound to name and whether a binding exists.
// SPARQL distinguishes "unbound" (ok == false) from a bound but
// otherwise-null-like value; there is no null term.
func (m Mapping) Lookup(name string) (sparqleval.Term, bool) {
	if m.bindings == nil {
		return nil, false
	}
	t, ok := m.bindings[name]
	return t, ok
}

// Bound reports whether name has a binding. Equivalent to discarding
// Lookup's first return value; provided because BOUND(?v) is exactly
// this test.
func (m Mapping) Bound(name string) bool {
	_, ok := m.Lookup(name)
	return ok
}

// With returns a new Mapping equal to m plus the (name, term) binding,
// leaving m unmodified. Used by hosts composing extended mappings (e.g.
// BIND) without this package needing a mutable-map API.
func (m Mapping) With(name string, t sparqleval.Term) Mapping {
	next := make(map[string]sparqleval.Term, len(m.bindings)+1)
	for k, v := range m.bindings {
		next[k] = v
	}
	next[name] = t
	return Mapping{bindings: next}
}
