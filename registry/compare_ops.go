package registry

import (
	"github.com/knakk/sparqleval"
	"github.com/knakk/sparqleval/expr"
)

const (
	OpEq expr.Operator = "="
	OpNe expr.Operator = "!="
	OpLt expr.Operator = "<"
	OpLe expr.Operator = "<="
	OpGt expr.Operator = ">"
	OpGe expr.Operator = ">="
)

// registerSameTag registers impl for every (tag, tag) tuple in tags,
// used below to cover the numeric lattice and the dateTime comparisons
// without going through registerNumeric2's TypedValue-in/TypedValue-out
// shape, since CompareOrder and ValueEqual already take raw Terms.
func (b *builder) registerSameTag(op expr.Operator, tags []sparqleval.TypeTag, impl Implementation) {
	for _, tag := range tags {
		b.register(op, []sparqleval.TypeTag{tag, tag}, impl)
	}
}

func registerComparisons(b *builder) {
	eq := func(args []sparqleval.Term) (sparqleval.Term, error) {
		ok, err := sparqleval.ValueEqual(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return sparqleval.NewBooleanLiteral(ok), nil
	}
	ne := func(args []sparqleval.Term) (sparqleval.Term, error) {
		ok, err := sparqleval.ValueEqual(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return sparqleval.NewBooleanLiteral(!ok), nil
	}

	b.registerSameTag(OpEq, numericTags, eq)
	b.registerAnyStringLike(OpEq, 2, eq)
	b.register(OpEq, []sparqleval.TypeTag{sparqleval.TagBoolean, sparqleval.TagBoolean}, eq)
	b.register(OpEq, []sparqleval.TypeTag{sparqleval.TagDateTime, sparqleval.TagDateTime}, eq)
	b.register(OpEq, []sparqleval.TypeTag{sparqleval.TagOther, sparqleval.TagOther}, eq)

	b.registerSameTag(OpNe, numericTags, ne)
	b.registerAnyStringLike(OpNe, 2, ne)
	b.register(OpNe, []sparqleval.TypeTag{sparqleval.TagBoolean, sparqleval.TagBoolean}, ne)
	b.register(OpNe, []sparqleval.TypeTag{sparqleval.TagDateTime, sparqleval.TagDateTime}, ne)
	b.register(OpNe, []sparqleval.TypeTag{sparqleval.TagOther, sparqleval.TagOther}, ne)

	registerOrderOp := func(op expr.Operator, accept func(o sparqleval.Order) bool) {
		impl := func(args []sparqleval.Term) (sparqleval.Term, error) {
			ord, err := sparqleval.CompareOrder(args[0], args[1])
			if err != nil {
				return nil, err
			}
			return sparqleval.NewBooleanLiteral(accept(ord)), nil
		}
		b.registerSameTag(op, numericTags, impl)
		b.registerAnyStringLike(op, 2, impl)
		b.register(op, []sparqleval.TypeTag{sparqleval.TagDateTime, sparqleval.TagDateTime}, impl)
	}
	registerOrderOp(OpLt, func(o sparqleval.Order) bool { return o == sparqleval.OrderLess })
	registerOrderOp(OpLe, func(o sparqleval.Order) bool { return o != sparqleval.OrderGreater })
	registerOrderOp(OpGt, func(o sparqleval.Order) bool { return o == sparqleval.OrderGreater })
	registerOrderOp(OpGe, func(o sparqleval.Order) bool { return o != sparqleval.OrderLess })
}
