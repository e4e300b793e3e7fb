// Package expr defines the expression AST the evaluator walks, and the
// solution mapping it evaluates expressions against. Both are produced
// by collaborators outside this module (the SPARQL algebra parser and
// the query engine's binding iterator, respectively); this package only
// fixes their shape.
package expr

import "github.com/knakk/sparqleval"

// Operator names a regular (non-special) function or infix/prefix
// operator symbol. The concrete set of recognised operators, and which
// of them are special forms routed to the specialforms package instead
// of the registry, is owned by the registry and specialforms packages;
// Operator itself is just the key they dispatch on.
type Operator string

// Expression is the closed sum of AST node kinds the evaluator accepts.
// Implementations are provided by this package; external callers build
// trees out of them but never add new variants, mirroring the evaluator
// switch in eval.Evaluator.Evaluate.
type Expression interface {
	exprNode()
}

// Variable references a SPARQL query variable, e.g. ?name without the
// leading sigil.
type Variable struct {
	Name string
}

func (Variable) exprNode() {}

// TermExpr wraps a constant RDF term as an expression, e.g. a literal or
// IRI appearing directly in a FILTER.
type TermExpr struct {
	Term sparqleval.Term
}

func (TermExpr) exprNode() {}

// OperatorExpr applies a named operator (arithmetic, comparison, or any
// other registered regular function or special form) to an ordered list
// of sub-expressions.
type OperatorExpr struct {
	Op   Operator
	Args []Expression
}

func (OperatorExpr) exprNode() {}

// Named invokes a user-defined extension function identified by IRI,
// resolved at evaluation time via the host's LookupExtension hook.
type Named struct {
	IRI  string
	Args []Expression
}

func (Named) exprNode() {}

// Existence is an EXISTS or NOT EXISTS sub-query. Algebra is the opaque
// algebra fragment the host's EvaluateExists hook understands; this
// package does not interpret it.
type Existence struct {
	Algebra any
	Negated bool
}

func (Existence) exprNode() {}

// Aggregate stands in for an aggregate expression (COUNT, SUM, ...) that
// reached the tree evaluator unresolved. Aggregates are expected to be
// rewritten into plain variable references by the query engine's
// group-by/aggregation phase before the expression tree reaches this
// module; an Aggregate node surviving to Evaluate is a caller bug.
type Aggregate struct {
	Name     string
	Distinct bool
	Arg      Expression
}

func (Aggregate) exprNode() {}
