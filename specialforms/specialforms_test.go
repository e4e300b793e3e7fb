package specialforms

import (
	"context"
	"testing"

	"github.com/knakk/sparqleval"
	"github.com/knakk/sparqleval/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exprEvaluator is a minimal Evaluator double that resolves expr.Variable
// nodes against a fixed mapping and expr.TermExpr nodes to their wrapped
// term, failing on anything else. It also supports a sentinel errExpr
// kind used to force evaluation failures in specific branches.
type exprEvaluator struct {
	m expr.Mapping
}

// errExpr embeds expr.Existence only to satisfy the sealed
// expr.Expression interface; the evaluator double matches errExpr itself
// and returns err.
type errExpr struct {
	expr.Existence
	err error
}

func (e exprEvaluator) Evaluate(ctx context.Context, ex expr.Expression, m expr.Mapping) (sparqleval.Term, error) {
	switch n := ex.(type) {
	case expr.Variable:
		v, ok := m.Lookup(n.Name)
		if !ok {
			return nil, sparqleval.NewUnboundVariableError(n.Name)
		}
		return v, nil
	case expr.TermExpr:
		return n.Term, nil
	case errExpr:
		return nil, n.err
	default:
		return nil, sparqleval.NewUnknownNamedOperatorError("unsupported test node")
	}
}

func term(t sparqleval.Term) expr.Expression { return expr.TermExpr{Term: t} }

func boolTerm(b bool) expr.Expression { return term(sparqleval.NewBooleanLiteral(b)) }

func newEv() exprEvaluator { return exprEvaluator{m: expr.NewMapping(nil)} }

func asBool(t *testing.T, term sparqleval.Term) bool {
	t.Helper()
	v := sparqleval.TypedValueOf(term)
	require.Equal(t, sparqleval.TagBoolean, v.Tag)
	return v.Bool
}

func TestIsSpecial(t *testing.T) {
	assert.True(t, IsSpecial(OpBound))
	assert.True(t, IsSpecial(OpIn))
	assert.True(t, IsSpecial(OpNotIn))
	assert.False(t, IsSpecial("+"))
	assert.False(t, IsSpecial("NOW"))
}

func TestBound(t *testing.T) {
	ev := exprEvaluator{m: expr.NewMapping(map[string]sparqleval.Term{"x": sparqleval.NewIntegerLiteral("1")})}

	result, err := Dispatch(context.Background(), OpBound, []expr.Expression{expr.Variable{Name: "x"}}, ev.m, ev, 0)
	require.NoError(t, err)
	assert.True(t, asBool(t, result))

	result, err = Dispatch(context.Background(), OpBound, []expr.Expression{expr.Variable{Name: "y"}}, ev.m, ev, 0)
	require.NoError(t, err)
	assert.False(t, asBool(t, result))
}

func TestBoundRejectsNonVariable(t *testing.T) {
	ev := newEv()
	_, err := Dispatch(context.Background(), OpBound, []expr.Expression{term(sparqleval.NewIntegerLiteral("1"))}, ev.m, ev, 0)
	require.Error(t, err)
}

func TestIf(t *testing.T) {
	ev := newEv()
	result, err := Dispatch(context.Background(), OpIf, []expr.Expression{
		boolTerm(true), term(sparqleval.NewStringLiteral("yes")), term(sparqleval.NewStringLiteral("no")),
	}, ev.m, ev, 0)
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewStringLiteral("yes")))

	result, err = Dispatch(context.Background(), OpIf, []expr.Expression{
		boolTerm(false), term(sparqleval.NewStringLiteral("yes")), term(sparqleval.NewStringLiteral("no")),
	}, ev.m, ev, 0)
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewStringLiteral("no")))
}

func TestCoalesce(t *testing.T) {
	ev := newEv()
	result, err := Dispatch(context.Background(), OpCoalesce, []expr.Expression{
		errExpr{err: sparqleval.NewUnboundVariableError("x")},
		errExpr{err: sparqleval.NewUnboundVariableError("y")},
		term(sparqleval.NewStringLiteral("fallback")),
	}, ev.m, ev, 0)
	require.NoError(t, err)
	assert.True(t, sparqleval.SameTerm(result, sparqleval.NewStringLiteral("fallback")))
}

func TestCoalesceAllFail(t *testing.T) {
	ev := newEv()
	_, err := Dispatch(context.Background(), OpCoalesce, []expr.Expression{
		errExpr{err: sparqleval.NewUnboundVariableError("x")},
	}, ev.m, ev, 0)
	require.Error(t, err)
	kind, ok := sparqleval.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, sparqleval.KindCoalesce, kind)
}

// TestOrTruthTable covers the full 3x3 (true/false/error) truth table for
// ||, matching the "error acts as unknown unless the other side proves
// true" semantics.
func TestOrTruthTable(t *testing.T) {
	errOperand := errExpr{err: sparqleval.NewEBVError(nil)}
	tests := []struct {
		name      string
		left      expr.Expression
		right     expr.Expression
		want      bool
		wantError bool
	}{
		{"true || true", boolTerm(true), boolTerm(true), true, false},
		{"true || false", boolTerm(true), boolTerm(false), true, false},
		{"false || true", boolTerm(false), boolTerm(true), true, false},
		{"false || false", boolTerm(false), boolTerm(false), false, false},
		{"true || error", boolTerm(true), errOperand, true, false},
		{"error || true", errOperand, boolTerm(true), true, false},
		{"false || error", boolTerm(false), errOperand, false, true},
		{"error || false", errOperand, boolTerm(false), false, true},
		{"error || error", errOperand, errOperand, false, true},
	}
	ev := newEv()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Dispatch(context.Background(), OpOr, []expr.Expression{tt.left, tt.right}, ev.m, ev, 0)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, asBool(t, result))
		})
	}
}

// TestAndTruthTable covers the dual truth table for &&.
func TestAndTruthTable(t *testing.T) {
	errOperand := errExpr{err: sparqleval.NewEBVError(nil)}
	tests := []struct {
		name      string
		left      expr.Expression
		right     expr.Expression
		want      bool
		wantError bool
	}{
		{"true && true", boolTerm(true), boolTerm(true), true, false},
		{"true && false", boolTerm(true), boolTerm(false), false, false},
		{"false && true", boolTerm(false), boolTerm(true), false, false},
		{"false && false", boolTerm(false), boolTerm(false), false, false},
		{"false && error", boolTerm(false), errOperand, false, false},
		{"error && false", errOperand, boolTerm(false), false, false},
		{"true && error", boolTerm(true), errOperand, false, true},
		{"error && true", errOperand, boolTerm(true), false, true},
		{"error && error", errOperand, errOperand, false, true},
	}
	ev := newEv()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Dispatch(context.Background(), OpAnd, []expr.Expression{tt.left, tt.right}, ev.m, ev, 0)
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, asBool(t, result))
		})
	}
}

func TestSameTerm(t *testing.T) {
	ev := newEv()
	result, err := Dispatch(context.Background(), OpSameTerm, []expr.Expression{
		term(sparqleval.NewIntegerLiteral("1")),
		term(sparqleval.Literal{Lexical: "1.0", DatatypeIRI: "http://www.w3.org/2001/XMLSchema#decimal"}),
	}, ev.m, ev, 0)
	require.NoError(t, err)
	assert.False(t, asBool(t, result), "sameTerm must distinguish integer 1 from decimal 1.0")

	result, err = Dispatch(context.Background(), OpSameTerm, []expr.Expression{
		term(sparqleval.NewStringLiteral("x")), term(sparqleval.NewStringLiteral("x")),
	}, ev.m, ev, 0)
	require.NoError(t, err)
	assert.True(t, asBool(t, result))
}

func TestSameTermPropagatesOperandError(t *testing.T) {
	ev := newEv()
	_, err := Dispatch(context.Background(), OpSameTerm, []expr.Expression{
		errExpr{err: sparqleval.NewUnboundVariableError("x")},
		term(sparqleval.NewStringLiteral("x")),
	}, ev.m, ev, 0)
	require.Error(t, err)
	kind, ok := sparqleval.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, sparqleval.KindUnboundVariable, kind)
}

func TestIn(t *testing.T) {
	ev := newEv()
	result, err := Dispatch(context.Background(), OpIn, []expr.Expression{
		term(sparqleval.NewIntegerLiteral("2")),
		term(sparqleval.NewIntegerLiteral("1")),
		term(sparqleval.NewIntegerLiteral("2")),
		term(sparqleval.NewIntegerLiteral("3")),
	}, ev.m, ev, 0)
	require.NoError(t, err)
	assert.True(t, asBool(t, result))
}

func TestNotIn(t *testing.T) {
	ev := newEv()
	result, err := Dispatch(context.Background(), OpNotIn, []expr.Expression{
		term(sparqleval.NewIntegerLiteral("5")),
		term(sparqleval.NewIntegerLiteral("1")),
		term(sparqleval.NewIntegerLiteral("2")),
	}, ev.m, ev, 0)
	require.NoError(t, err)
	assert.True(t, asBool(t, result))
}

// A match found after a failing candidate still confirms membership: IN
// only needs one confirmed equal, errors on the way don't block success.
func TestInMatchAfterFailingCandidate(t *testing.T) {
	ev := newEv()
	result, err := Dispatch(context.Background(), OpIn, []expr.Expression{
		term(sparqleval.NewIntegerLiteral("2")),
		errExpr{err: sparqleval.NewUnboundVariableError("bad")},
		term(sparqleval.NewIntegerLiteral("2")),
	}, ev.m, ev, 0)
	require.NoError(t, err)
	assert.True(t, asBool(t, result))
}

// No match and at least one candidate errored: IN can't prove "not a
// member" with confidence, so it must fail rather than return false.
func TestInNoMatchWithErrorsFails(t *testing.T) {
	ev := newEv()
	_, err := Dispatch(context.Background(), OpIn, []expr.Expression{
		term(sparqleval.NewIntegerLiteral("99")),
		errExpr{err: sparqleval.NewUnboundVariableError("bad")},
		term(sparqleval.NewIntegerLiteral("2")),
	}, ev.m, ev, 0)
	require.Error(t, err)
	kind, ok := sparqleval.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, sparqleval.KindIn, kind)
}

func TestInLeftOperandErrorPropagatesUncaught(t *testing.T) {
	ev := newEv()
	_, err := Dispatch(context.Background(), OpIn, []expr.Expression{
		errExpr{err: sparqleval.NewUnboundVariableError("x")},
		term(sparqleval.NewIntegerLiteral("1")),
	}, ev.m, ev, 0)
	require.Error(t, err)
	kind, ok := sparqleval.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, sparqleval.KindUnboundVariable, kind)
}

// A positive maxInOperands rejects an IN call whose candidate list
// exceeds the cap before evaluating any candidate, guarding against a
// pathologically long list.
func TestInEnforcesMaxInOperands(t *testing.T) {
	ev := newEv()
	_, err := Dispatch(context.Background(), OpIn, []expr.Expression{
		term(sparqleval.NewIntegerLiteral("1")),
		term(sparqleval.NewIntegerLiteral("1")),
		term(sparqleval.NewIntegerLiteral("2")),
		term(sparqleval.NewIntegerLiteral("3")),
	}, ev.m, ev, 2)
	require.Error(t, err)
	kind, ok := sparqleval.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, sparqleval.KindInvalidArity, kind)

	result, err := Dispatch(context.Background(), OpIn, []expr.Expression{
		term(sparqleval.NewIntegerLiteral("1")),
		term(sparqleval.NewIntegerLiteral("1")),
		term(sparqleval.NewIntegerLiteral("2")),
	}, ev.m, ev, 2)
	require.NoError(t, err)
	assert.True(t, asBool(t, result))
}

func TestDispatchUnknownOperator(t *testing.T) {
	ev := newEv()
	_, err := Dispatch(context.Background(), "NOT_SPECIAL", nil, ev.m, ev, 0)
	require.Error(t, err)
}

func TestDispatchHonorsCancelledContext(t *testing.T) {
	ev := newEv()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Dispatch(ctx, OpIf, []expr.Expression{boolTerm(true), boolTerm(true), boolTerm(false)}, ev.m, ev, 0)
	require.Error(t, err)
	kind, ok := sparqleval.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, sparqleval.KindCancelled, kind)
}
