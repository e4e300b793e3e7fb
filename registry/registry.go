// Package registry implements the static (operator, operand-type-tuple)
// dispatch table SPARQL regular functions and operators resolve through,
// per spec §4.2. Special forms (BOUND, IF, COALESCE, ||, &&, sameTerm,
// IN, NOT IN) are not registered here; they need their argument list
// unevaluated and are dispatched directly by the specialforms package.
package registry

import (
	"strings"
	"sync"

	"github.com/knakk/sparqleval"
	"github.com/knakk/sparqleval/expr"
)

// Implementation is a pure function from already-evaluated operand
// terms to a result term. Registered implementations never see
// unevaluated sub-expressions or the mapping; that is the
// distinguishing feature of a "regular" function versus a special form.
type Implementation func(args []sparqleval.Term) (sparqleval.Term, error)

type entry struct {
	arity int
	impl  Implementation
}

type tableKey struct {
	op   expr.Operator
	tags string
}

func tagsKey(tags []sparqleval.TypeTag) string {
	var b strings.Builder
	for i, t := range tags {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// Table is an immutable (operator, tag-tuple) -> Implementation map. The
// zero value is not usable; build one with NewTable or use Default.
type Table struct {
	entries map[tableKey]entry
	arities map[expr.Operator]map[int]bool
}

// builder accumulates Register calls before the Table is frozen. Kept
// separate from Table so Default() can hand out a Table with no mutex:
// once building finishes the map is never written again, and concurrent
// reads of a Go map are safe as long as there are no concurrent writes.
type builder struct {
	t *Table
}

func newBuilder() *builder {
	return &builder{t: &Table{
		entries: make(map[tableKey]entry),
		arities: make(map[expr.Operator]map[int]bool),
	}}
}

// register adds one concrete overload: op applied to operands of the
// given tag tuple dispatches to impl. Most operators register every tag
// tuple at a single arity; a handful (e.g. SUBSTR's two- and
// three-argument forms) register more than one arity for the same
// operator name, so Resolve tracks the set of arities an operator
// accepts rather than a single expected count.
func (b *builder) register(op expr.Operator, tags []sparqleval.TypeTag, impl Implementation) {
	k := tableKey{op: op, tags: tagsKey(tags)}
	if _, exists := b.t.entries[k]; exists {
		panic("registry: duplicate entry for " + string(op) + "/" + k.tags)
	}
	b.t.entries[k] = entry{arity: len(tags), impl: impl}
	if b.t.arities[op] == nil {
		b.t.arities[op] = make(map[int]bool)
	}
	b.t.arities[op][len(tags)] = true
}

// registerNumeric1 and registerNumeric2 register impl for one- and
// two-operand numeric calls respectively, so arithmetic entries don't need
// to be spelled out once per (integer,integer), (integer,decimal), ...
// combination — only the four "pure" tuples where every operand shares
// one numeric tag are pre-populated; mixed-tag calls are served by the
// numeric-promotion retry in Resolve, per dispatch step 3.
func (b *builder) registerNumeric1(op expr.Operator, impl func(sparqleval.TypedValue) (sparqleval.Term, error)) {
	for _, tag := range numericTags {
		tag := tag
		b.register(op, []sparqleval.TypeTag{tag}, func(args []sparqleval.Term) (sparqleval.Term, error) {
			return impl(sparqleval.TypedValueOf(args[0]))
		})
	}
}

func (b *builder) registerNumeric2(op expr.Operator, impl func(a, b sparqleval.TypedValue) (sparqleval.Term, error)) {
	for _, tag := range numericTags {
		tag := tag
		b.register(op, []sparqleval.TypeTag{tag, tag}, func(args []sparqleval.Term) (sparqleval.Term, error) {
			return impl(sparqleval.TypedValueOf(args[0]), sparqleval.TypedValueOf(args[1]))
		})
	}
}

// registerAnyStringLike pre-expands a "string or langString pairwise"
// entry into the two concrete tuples the spec's §4.2 note calls for,
// instead of modelling it as a dispatch-time wildcard.
func (b *builder) registerAnyStringLike(op expr.Operator, arity int, impl Implementation) {
	for _, tag := range []sparqleval.TypeTag{sparqleval.TagString, sparqleval.TagLangString} {
		tags := make([]sparqleval.TypeTag, arity)
		for i := range tags {
			tags[i] = tag
		}
		b.register(op, tags, impl)
	}
}

var numericTags = []sparqleval.TypeTag{
	sparqleval.TagInteger, sparqleval.TagDecimal, sparqleval.TagFloat, sparqleval.TagDouble,
}

// Resolve applies op to already-evaluated operand terms, implementing
// the four-step dispatch policy from spec §4.2: exact tuple lookup,
// then (if every operand is numeric) promote to the lattice join and
// retry, then fail.
func (t *Table) Resolve(op expr.Operator, args []sparqleval.Term) (sparqleval.Term, error) {
	arities, known := t.arities[op]
	if !known {
		return nil, sparqleval.NewUnknownNamedOperatorError(string(op))
	}
	if !arities[len(args)] {
		return nil, sparqleval.NewInvalidArityError(string(op), nearestArity(arities), len(args))
	}

	tags := make([]sparqleval.TypeTag, len(args))
	for i, a := range args {
		tags[i] = sparqleval.TypedValueOf(a).Tag
	}

	if e, ok := t.entries[tableKey{op: op, tags: tagsKey(tags)}]; ok {
		return e.impl(args)
	}

	if allNumeric(tags) {
		join := tags[0]
		for _, tag := range tags[1:] {
			var ok bool
			join, ok = sparqleval.JoinNumeric(join, tag)
			if !ok {
				break
			}
		}
		promoted := make([]sparqleval.TypeTag, len(tags))
		for i := range promoted {
			promoted[i] = join
		}
		if e, ok := t.entries[tableKey{op: op, tags: tagsKey(promoted)}]; ok {
			promotedArgs, err := promoteArgs(args, join)
			if err != nil {
				return nil, err
			}
			return e.impl(promotedArgs)
		}
	}

	return nil, sparqleval.NewInvalidArgumentTypesError(string(op), tags, args)
}

// nearestArity picks a representative expected arity for an
// InvalidArityError's "want" field when op accepts more than one arity.
// Any deterministic choice is fine here, since the message's purpose is
// diagnostic context, not a contract; the smallest accepted arity reads
// most naturally for the common one-extra-optional-argument case.
func nearestArity(arities map[int]bool) int {
	best := -1
	for a := range arities {
		if best < 0 || a < best {
			best = a
		}
	}
	return best
}

func allNumeric(tags []sparqleval.TypeTag) bool {
	for _, t := range tags {
		if !t.IsNumeric() {
			return false
		}
	}
	return true
}

func promoteArgs(args []sparqleval.Term, target sparqleval.TypeTag) ([]sparqleval.Term, error) {
	out := make([]sparqleval.Term, len(args))
	for i, a := range args {
		v := sparqleval.TypedValueOf(a)
		pv, err := sparqleval.PromoteNumeric(v, target)
		if err != nil {
			return nil, err
		}
		out[i] = pv.AsTerm()
	}
	return out, nil
}

// Has reports whether op is a known regular operator, i.e. one this
// table can dispatch. The tree evaluator does not use it for routing:
// it sends an OperatorExpr to specialforms when specialforms.IsSpecial
// reports true.
func (t *Table) Has(op expr.Operator) bool {
	_, ok := t.arities[op]
	return ok
}

var defaultTable = sync.OnceValue(build)

// Default returns the process-wide registry of built-in SPARQL regular
// functions and operators. It is built once, lazily, and is safe for
// concurrent use by any number of evaluators thereafter: per spec §5,
// "the registry is read-only after initialization and safe for
// concurrent read."
func Default() *Table {
	return defaultTable()
}

func build() *Table {
	b := newBuilder()
	registerArithmetic(b)
	registerComparisons(b)
	registerTermFuncs(b)
	registerStringFuncs(b)
	registerNumericFuncs(b)
	registerDateFuncs(b)
	registerHashFuncs(b)
	registerCastFuncs(b)
	return b.t
}
