package eval

import (
	"context"
	"time"

	"github.com/knakk/sparqleval"
	"github.com/knakk/sparqleval/expr"
)

// Extension is a user-registered extension function: a named operator
// identified by IRI rather than a built-in symbol, resolved at
// evaluation time through Hooks.LookupExtension.
type Extension struct {
	Arity int
	Call  func(args []sparqleval.Term) (sparqleval.Term, error)
}

// Hooks is the set of host-supplied collaborators the evaluator calls
// into for anything it cannot decide from the expression tree and
// mapping alone, per spec §6.
type Hooks interface {
	// EvaluateExists evaluates an EXISTS/NOT EXISTS sub-pattern against
	// the surrounding dataset. algebra is the opaque algebra fragment
	// carried by expr.Existence; this module never inspects it.
	EvaluateExists(ctx context.Context, algebra any, m expr.Mapping) (bool, error)

	// LookupExtension resolves a user-defined function by IRI.
	LookupExtension(iri string) (Extension, bool)

	// Now returns the timestamp NOW() should report. The host is
	// responsible for pinning one stable value across a whole query.
	Now() time.Time

	// ResolveIRI resolves relative against base per RFC 3986, for the
	// IRI()/URI() constructor functions.
	ResolveIRI(base, relative string) (string, error)
}
