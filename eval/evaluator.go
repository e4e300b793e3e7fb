// Package eval implements the recursive-descent tree evaluator (spec
// §4.4): given an expression AST node and a solution mapping, it
// produces the Term the expression denotes or a typed evaluation error.
// It is the one package that ties together the term model (root
// package), the regular-operator registry, and the special-forms
// dispatcher, plus the handful of operators — NOW, IRI, URI — that are
// neither, since their result depends on an injected hook rather than
// purely on their operand terms.
package eval

import (
	"context"

	"github.com/knakk/sparqleval"
	"github.com/knakk/sparqleval/config"
	"github.com/knakk/sparqleval/expr"
	"github.com/knakk/sparqleval/metrics"
	"github.com/knakk/sparqleval/registry"
	"github.com/knakk/sparqleval/specialforms"
)

// Hook-dependent operators excluded from registry.Default, per the
// comments in registry/date_funcs.go and registry/cast_funcs.go.
const (
	opNow expr.Operator = "NOW"
	opIRI expr.Operator = "IRI"
	opURI expr.Operator = "URI"
)

// Evaluator walks expression trees against a fixed set of hooks and an
// operator table. The zero value is not usable; build one with New.
type Evaluator struct {
	hooks    Hooks
	table    *registry.Table
	recorder *metrics.Recorder
	baseIRI  string
	opts     config.Options
}

// New builds an Evaluator. table defaults to registry.Default() when
// nil; recorder may be nil, in which case evaluation counts are simply
// not recorded (metrics.Recorder is nil-safe on every method). opts is
// the ambient configuration surface (config.Default() if the host has
// no file to load); its MaxInOperands field caps IN/NOT IN's candidate
// list length.
func New(hooks Hooks, table *registry.Table, recorder *metrics.Recorder, baseIRI string, opts config.Options) *Evaluator {
	if table == nil {
		table = registry.Default()
	}
	return &Evaluator{hooks: hooks, table: table, recorder: recorder, baseIRI: baseIRI, opts: opts}
}

// Evaluate implements spec §4.4's tree-walk operation. It is safe to
// call concurrently from multiple goroutines against distinct mappings,
// since an Evaluator holds no mutable state of its own (spec §5); the
// injected Hooks implementation is responsible for its own concurrency
// safety if shared across calls.
func (e *Evaluator) Evaluate(ctx context.Context, node expr.Expression, m expr.Mapping) (t sparqleval.Term, err error) {
	if e.recorder != nil {
		defer func() { e.recorder.RecordEvaluation(err) }()
	}
	return e.evaluate(ctx, node, m)
}

func (e *Evaluator) evaluate(ctx context.Context, node expr.Expression, m expr.Mapping) (sparqleval.Term, error) {
	if err := ctx.Err(); err != nil {
		return nil, sparqleval.NewCancelledError(err)
	}

	switch n := node.(type) {
	case expr.Variable:
		t, ok := m.Lookup(n.Name)
		if !ok {
			return nil, sparqleval.NewUnboundVariableError(n.Name)
		}
		return t, nil

	case expr.TermExpr:
		return n.Term, nil

	case expr.OperatorExpr:
		return e.evaluateOperator(ctx, n, m)

	case expr.Named:
		return e.evaluateNamed(ctx, n, m)

	case expr.Existence:
		ok, err := e.hooks.EvaluateExists(ctx, n.Algebra, m)
		if err != nil {
			return nil, err
		}
		if n.Negated {
			ok = !ok
		}
		return sparqleval.NewBooleanLiteral(ok), nil

	case expr.Aggregate:
		return nil, sparqleval.NewUnexpectedAggregateError(n.Name)

	default:
		return nil, sparqleval.NewUnknownNamedOperatorError("<unrecognized expression node>")
	}
}

func (e *Evaluator) evaluateOperator(ctx context.Context, n expr.OperatorExpr, m expr.Mapping) (sparqleval.Term, error) {
	if specialforms.IsSpecial(n.Op) {
		return specialforms.Dispatch(ctx, n.Op, n.Args, m, subEvaluator{e}, e.opts.MaxInOperands)
	}

	switch n.Op {
	case opNow:
		return e.evaluateNow(n.Args)
	case opIRI, opURI:
		return e.evaluateIRI(ctx, n.Args, m)
	}

	args := make([]sparqleval.Term, len(n.Args))
	for i, a := range n.Args {
		t, err := e.evaluate(ctx, a, m)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return e.table.Resolve(n.Op, args)
}

func (e *Evaluator) evaluateNow(args []expr.Expression) (sparqleval.Term, error) {
	if len(args) != 0 {
		return nil, sparqleval.NewInvalidArityError(string(opNow), 0, len(args))
	}
	return sparqleval.TypedValue{Tag: sparqleval.TagDateTime, Time: e.hooks.Now()}.AsTerm(), nil
}

func (e *Evaluator) evaluateIRI(ctx context.Context, args []expr.Expression, m expr.Mapping) (sparqleval.Term, error) {
	if len(args) != 1 {
		return nil, sparqleval.NewInvalidArityError(string(opIRI), 1, len(args))
	}
	arg, err := e.evaluate(ctx, args[0], m)
	if err != nil {
		return nil, err
	}
	var lexical string
	switch v := arg.(type) {
	case sparqleval.NamedNode:
		return v, nil
	case sparqleval.Literal:
		if v.DatatypeIRI != sparqleval.XSDString && v.Lang == "" {
			return nil, sparqleval.NewInvalidArgumentTypesError(string(opIRI), nil, args1(arg))
		}
		lexical = v.Lexical
	default:
		return nil, sparqleval.NewInvalidArgumentTypesError(string(opIRI), nil, args1(arg))
	}
	resolved, err := e.hooks.ResolveIRI(e.baseIRI, lexical)
	if err != nil {
		return nil, sparqleval.NewInvalidLexicalFormError(string(opIRI), arg)
	}
	if !sparqleval.ValidAbsoluteIRI(resolved) {
		return nil, sparqleval.NewInvalidLexicalFormError(string(opIRI), arg)
	}
	return sparqleval.NamedNode{IRI: resolved}, nil
}

func args1(t sparqleval.Term) []sparqleval.Term { return []sparqleval.Term{t} }

// subEvaluator is the handle special forms evaluate their operands
// through. It calls evaluate directly, so those sub-evaluations are not
// recorded as top-level Evaluate calls.
type subEvaluator struct{ e *Evaluator }

func (s subEvaluator) Evaluate(ctx context.Context, node expr.Expression, m expr.Mapping) (sparqleval.Term, error) {
	return s.e.evaluate(ctx, node, m)
}

func (e *Evaluator) evaluateNamed(ctx context.Context, n expr.Named, m expr.Mapping) (sparqleval.Term, error) {
	ext, ok := e.hooks.LookupExtension(n.IRI)
	if !ok {
		return nil, sparqleval.NewUnknownNamedOperatorError(n.IRI)
	}
	if len(n.Args) != ext.Arity {
		return nil, sparqleval.NewInvalidArityError(n.IRI, ext.Arity, len(n.Args))
	}
	args := make([]sparqleval.Term, len(n.Args))
	for i, a := range n.Args {
		t, err := e.evaluate(ctx, a, m)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	return ext.Call(args)
}
