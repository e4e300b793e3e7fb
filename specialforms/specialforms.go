// Package specialforms implements the short-circuiting and
// variadic functional forms that need their argument list unevaluated:
// BOUND, IF, COALESCE, ||, &&, sameTerm, IN, and NOT IN, per spec §4.3.
// Regular functions and operators are handled by the sibling registry
// package instead; Dispatch is the only entry point the tree evaluator
// needs to call into this package.
package specialforms

import (
	"context"

	"github.com/knakk/sparqleval"
	"github.com/knakk/sparqleval/expr"
)

const (
	OpBound    expr.Operator = "BOUND"
	OpIf       expr.Operator = "IF"
	OpCoalesce expr.Operator = "COALESCE"
	OpOr       expr.Operator = "||"
	OpAnd      expr.Operator = "&&"
	OpSameTerm expr.Operator = "sameTerm"
	OpIn       expr.Operator = "IN"
	OpNotIn    expr.Operator = "NOT IN"
)

// Evaluator is the handle special forms use to evaluate a sub-expression
// on demand. It is satisfied by eval.Evaluator; specialforms does not
// import eval, to keep the dependency one-directional (eval depends on
// specialforms, never the reverse).
type Evaluator interface {
	Evaluate(ctx context.Context, e expr.Expression, m expr.Mapping) (sparqleval.Term, error)
}

// IsSpecial reports whether op names one of this package's forms. The
// tree evaluator calls this to decide whether an OperatorExpr routes
// here (unevaluated args) or to registry.Default (evaluated args).
func IsSpecial(op expr.Operator) bool {
	switch op {
	case OpBound, OpIf, OpCoalesce, OpOr, OpAnd, OpSameTerm, OpIn, OpNotIn:
		return true
	default:
		return false
	}
}

// Dispatch evaluates a special form named op over its unevaluated
// argument list, per spec §4.3's exact semantics and error-propagation
// rules. Arity is validated per form, since each has a different shape
// (fixed 1/2/3 or variadic). maxInOperands caps the candidate-list
// length IN/NOT IN accepts (config.Options.MaxInOperands); zero means
// unlimited and is ignored by every other form.
func Dispatch(ctx context.Context, op expr.Operator, args []expr.Expression, m expr.Mapping, ev Evaluator, maxInOperands int) (sparqleval.Term, error) {
	switch op {
	case OpBound:
		return dispatchBound(args, m)
	case OpIf:
		return dispatchIf(ctx, args, m, ev)
	case OpCoalesce:
		return dispatchCoalesce(ctx, args, m, ev)
	case OpOr:
		return dispatchOr(ctx, args, m, ev)
	case OpAnd:
		return dispatchAnd(ctx, args, m, ev)
	case OpSameTerm:
		return dispatchSameTerm(ctx, args, m, ev)
	case OpIn:
		return dispatchIn(ctx, args, m, ev, false, maxInOperands)
	case OpNotIn:
		return dispatchIn(ctx, args, m, ev, true, maxInOperands)
	default:
		return nil, sparqleval.NewUnknownNamedOperatorError(string(op))
	}
}

func checkCancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return sparqleval.NewCancelledError(err)
	}
	return nil
}

func dispatchBound(args []expr.Expression, m expr.Mapping) (sparqleval.Term, error) {
	if len(args) != 1 {
		return nil, sparqleval.NewInvalidArityError(string(OpBound), 1, len(args))
	}
	v, ok := args[0].(expr.Variable)
	if !ok {
		return nil, sparqleval.NewInvalidArgumentTypesError(string(OpBound), nil, nil)
	}
	return sparqleval.NewBooleanLiteral(m.Bound(v.Name)), nil
}

func dispatchIf(ctx context.Context, args []expr.Expression, m expr.Mapping, ev Evaluator) (sparqleval.Term, error) {
	if len(args) != 3 {
		return nil, sparqleval.NewInvalidArityError(string(OpIf), 3, len(args))
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	c, err := ev.Evaluate(ctx, args[0], m)
	if err != nil {
		return nil, err
	}
	take, err := sparqleval.CoerceEBV(c)
	if err != nil {
		return nil, err
	}
	if take {
		return ev.Evaluate(ctx, args[1], m)
	}
	return ev.Evaluate(ctx, args[2], m)
}

func dispatchCoalesce(ctx context.Context, args []expr.Expression, m expr.Mapping, ev Evaluator) (sparqleval.Term, error) {
	if len(args) < 1 {
		return nil, sparqleval.NewInvalidArityError(string(OpCoalesce), 1, len(args))
	}
	var errs []error
	for _, a := range args {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}
		t, err := ev.Evaluate(ctx, a, m)
		if err == nil {
			return t, nil
		}
		errs = append(errs, err)
	}
	return nil, sparqleval.NewCoalesceError(errs)
}

// evalEBV evaluates e and coerces the result to an Effective Boolean
// Value in one step, for the operands of || and &&.
func evalEBV(ctx context.Context, e expr.Expression, m expr.Mapping, ev Evaluator) (bool, error) {
	t, err := ev.Evaluate(ctx, e, m)
	if err != nil {
		return false, err
	}
	return sparqleval.CoerceEBV(t)
}

func dispatchOr(ctx context.Context, args []expr.Expression, m expr.Mapping, ev Evaluator) (sparqleval.Term, error) {
	if len(args) != 2 {
		return nil, sparqleval.NewInvalidArityError(string(OpOr), 2, len(args))
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	leftVal, leftErr := evalEBV(ctx, args[0], m, ev)
	if leftErr == nil && leftVal {
		return sparqleval.NewBooleanLiteral(true), nil
	}
	rightVal, rightErr := evalEBV(ctx, args[1], m, ev)
	if leftErr != nil {
		if rightErr == nil && rightVal {
			return sparqleval.NewBooleanLiteral(true), nil
		}
		return nil, leftErr
	}
	if rightErr != nil {
		return nil, rightErr
	}
	return sparqleval.NewBooleanLiteral(leftVal || rightVal), nil
}

func dispatchAnd(ctx context.Context, args []expr.Expression, m expr.Mapping, ev Evaluator) (sparqleval.Term, error) {
	if len(args) != 2 {
		return nil, sparqleval.NewInvalidArityError(string(OpAnd), 2, len(args))
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	leftVal, leftErr := evalEBV(ctx, args[0], m, ev)
	if leftErr == nil && !leftVal {
		return sparqleval.NewBooleanLiteral(false), nil
	}
	rightVal, rightErr := evalEBV(ctx, args[1], m, ev)
	if leftErr != nil {
		if rightErr == nil && !rightVal {
			return sparqleval.NewBooleanLiteral(false), nil
		}
		return nil, leftErr
	}
	if rightErr != nil {
		return nil, rightErr
	}
	return sparqleval.NewBooleanLiteral(leftVal && rightVal), nil
}

// dispatchSameTerm evaluates both operands strictly left-to-right (per
// the Open Question resolution in spec §9: the source's parallel
// pre-scheduling is preserved only insofar as it has no observable
// effect for side-effect-free sub-expressions; this implementation goes
// further and makes the order a visible contract for extension
// functions with side effects). sameTerm is not in the set of forms
// that catch sub-errors, so either operand's error propagates as-is.
func dispatchSameTerm(ctx context.Context, args []expr.Expression, m expr.Mapping, ev Evaluator) (sparqleval.Term, error) {
	if len(args) != 2 {
		return nil, sparqleval.NewInvalidArityError(string(OpSameTerm), 2, len(args))
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	a, err := ev.Evaluate(ctx, args[0], m)
	if err != nil {
		return nil, err
	}
	b, err := ev.Evaluate(ctx, args[1], m)
	if err != nil {
		return nil, err
	}
	return sparqleval.NewBooleanLiteral(sparqleval.SameTerm(a, b)), nil
}

func dispatchIn(ctx context.Context, args []expr.Expression, m expr.Mapping, ev Evaluator, negate bool, maxInOperands int) (sparqleval.Term, error) {
	name := string(OpIn)
	if negate {
		name = string(OpNotIn)
	}
	if len(args) < 1 {
		return nil, sparqleval.NewInvalidArityError(name, 1, len(args))
	}
	if maxInOperands > 0 && len(args)-1 > maxInOperands {
		return nil, sparqleval.NewInvalidArityError(name, maxInOperands+1, len(args))
	}
	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}
	x, err := ev.Evaluate(ctx, args[0], m)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, candidate := range args[1:] {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}
		y, err := ev.Evaluate(ctx, candidate, m)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		eq, err := sparqleval.ValueEqual(x, y)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if eq {
			return sparqleval.NewBooleanLiteral(!negate), nil
		}
	}
	if len(errs) == 0 {
		return sparqleval.NewBooleanLiteral(negate), nil
	}
	return nil, sparqleval.NewInError(errs)
}
