package sparqleval

import (
	"errors"

	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Kind identifies a member of the evaluator's closed error taxonomy.
// Every error this module returns carries exactly one Kind, recoverable
// with KindOf.
type Kind string

const (
	KindUnboundVariable       Kind = "UNBOUND_VARIABLE"
	KindInvalidArgumentTypes  Kind = "INVALID_ARGUMENT_TYPES"
	KindInvalidArity          Kind = "INVALID_ARITY"
	KindInvalidLexicalForm    Kind = "INVALID_LEXICAL_FORM"
	KindInvalidCompare        Kind = "INVALID_COMPARE"
	KindEBV                   Kind = "EBV_ERROR"
	KindCoalesce              Kind = "COALESCE_ERROR"
	KindIn                    Kind = "IN_ERROR"
	KindUnknownNamedOperator  Kind = "UNKNOWN_NAMED_OPERATOR"
	KindUnexpectedAggregate   Kind = "UNEXPECTED_AGGREGATE"
	KindCancelled             Kind = "CANCELLED"
	KindCast                  Kind = "CAST_ERROR"
)

// KindOf recovers the taxonomy Kind from an error produced by this
// module. The second return value is false if err was not built by one
// of the New*Error constructors below (e.g. it is a bare error from a
// user-supplied hook).
func KindOf(err error) (Kind, bool) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return "", false
	}
	return Kind(oopsErr.Code()), true
}

// NewUnboundVariableError reports that name has no binding in the
// mapping the expression is evaluated against.
func NewUnboundVariableError(name string) error {
	return oops.Code(string(KindUnboundVariable)).
		With("variable", name).
		Errorf("unbound variable: ?%s", name)
}

// NewInvalidArgumentTypesError reports that overload dispatch found no
// entry for op over tags, and numeric promotion (if attempted) did not
// rescue it.
func NewInvalidArgumentTypesError(op string, tags []TypeTag, args []Term) error {
	tagStrs := lo.Map(tags, func(t TypeTag, _ int) string { return t.String() })
	return oops.Code(string(KindInvalidArgumentTypes)).
		With("operator", op).
		With("tags", tagStrs).
		With("operands", debugf(args)).
		Errorf("no overload of %s for operand types %v", op, tagStrs)
}

// NewInvalidArityError reports an operand count mismatch against a
// function's declared arity.
func NewInvalidArityError(op string, want, got int) error {
	return oops.Code(string(KindInvalidArity)).
		With("operator", op).
		With("want_arity", want).
		With("got_arity", got).
		Errorf("%s expects %d argument(s), got %d", op, want, got)
}

// NewInvalidLexicalFormError reports that a nonLexical literal reached
// an operation requiring a valid typed value.
func NewInvalidLexicalFormError(op string, t Term) error {
	return oops.Code(string(KindInvalidLexicalForm)).
		With("operator", op).
		With("term", debugString(t)).
		Errorf("%s: invalid lexical form for %s", op, debugString(t))
}

// NewInvalidCompareError reports that two literals from incomparable
// categories were compared with <, >, <=, or >=.
func NewInvalidCompareError(a, b Term) error {
	return oops.Code(string(KindInvalidCompare)).
		With("left", debugString(a)).
		With("right", debugString(b)).
		Errorf("cannot compare %s and %s", debugString(a), debugString(b))
}

// NewEBVError reports that t has no effective boolean value.
func NewEBVError(t Term) error {
	return oops.Code(string(KindEBV)).
		With("term", debugString(t)).
		Errorf("cannot coerce %s to an effective boolean value", debugString(t))
}

// NewCoalesceError reports that every branch of a COALESCE call failed.
// errs is retained verbatim (not flattened) so a caller can inspect each
// branch's failure.
func NewCoalesceError(errs []error) error {
	msgs := lo.Map(errs, func(e error, _ int) string { return e.Error() })
	return oops.Code(string(KindCoalesce)).
		With("errors", msgs).
		Wrap(errors.Join(errs...))
}

// NewInError reports that IN/NOT IN exhausted its candidate list without
// a confirmed match, having seen one or more sub-errors along the way.
func NewInError(errs []error) error {
	msgs := lo.Map(errs, func(e error, _ int) string { return e.Error() })
	return oops.Code(string(KindIn)).
		With("errors", msgs).
		Wrap(errors.Join(errs...))
}

// NewUnknownNamedOperatorError reports that iri is not registered in the
// host's extension-function registry.
func NewUnknownNamedOperatorError(iri string) error {
	return oops.Code(string(KindUnknownNamedOperator)).
		With("iri", iri).
		Errorf("unknown named operator <%s>", iri)
}

// NewUnexpectedAggregateError reports that an AggregateExpression node
// reached the evaluator unresolved.
func NewUnexpectedAggregateError(name string) error {
	return oops.Code(string(KindUnexpectedAggregate)).
		With("aggregate", name).
		Errorf("aggregate %s must be resolved before evaluation", name)
}

// NewCancelledError wraps a host cancellation signal (typically
// ctx.Err()) as a taxonomy member.
func NewCancelledError(cause error) error {
	return oops.Code(string(KindCancelled)).
		Wrap(cause)
}

// NewCastError reports that an xsd:* cast function was given an
// unconvertible operand.
func NewCastError(target string, t Term) error {
	return oops.Code(string(KindCast)).
		With("target_type", target).
		With("term", debugString(t)).
		Errorf("cannot cast %s to %s", debugString(t), target)
}
