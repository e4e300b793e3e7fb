package sparqleval

// Order is the result of comparing two terms under the ORDER BY total
// order: OrderLess, OrderEqual, or OrderGreater.
type Order int

const (
	OrderLess Order = iota - 1
	OrderEqual
	OrderGreater
)

// category partitions terms for the purposes of the ORDER BY total
// order: blank nodes sort before named nodes, which sort before
// literals.
type category int

const (
	catBlank category = iota
	catNamed
	catLiteral
)

func categoryOf(t Term) category {
	switch t.(type) {
	case BlankNode:
		return catBlank
	case NamedNode:
		return catNamed
	default:
		return catLiteral
	}
}

// CompareOrder implements the ORDER BY total order from spec §4.1:
// blank nodes < named nodes < literals; within literals, numerics
// compare by value after promotion, strings by Unicode code point
// (language-tagged strings compare by (lang, lexical) once datatypes
// match), and dateTimes by instant. Cross-category literal comparisons
// (e.g. a string against a dateTime) fail with InvalidCompareError,
// since SPARQL's ORDER BY total order extends but does not override the
// "<"/">" operators' category restriction.
func CompareOrder(a, b Term) (Order, error) {
	ca, cb := categoryOf(a), categoryOf(b)
	if ca != cb {
		return orderOf(ca < cb), nil
	}
	switch ca {
	case catBlank:
		return orderOfStrings(a.(BlankNode).Label, b.(BlankNode).Label), nil
	case catNamed:
		return orderOfStrings(a.(NamedNode).IRI, b.(NamedNode).IRI), nil
	default:
		return compareLiterals(a, b)
	}
}

func orderOf(less bool) Order {
	if less {
		return OrderLess
	}
	return OrderGreater
}

func orderOfStrings(a, b string) Order {
	switch {
	case a < b:
		return OrderLess
	case a > b:
		return OrderGreater
	default:
		return OrderEqual
	}
}

func compareLiterals(a, b Term) (Order, error) {
	va, vb := TypedValueOf(a), TypedValueOf(b)

	if va.Tag.IsNumeric() && vb.Tag.IsNumeric() {
		return compareNumeric(va, vb)
	}
	if va.Tag == TagDateTime && vb.Tag == TagDateTime {
		switch {
		case va.Time.Before(vb.Time):
			return OrderLess, nil
		case va.Time.After(vb.Time):
			return OrderGreater, nil
		default:
			return OrderEqual, nil
		}
	}
	if (va.Tag == TagString || va.Tag == TagLangString) && va.Tag == vb.Tag {
		if va.Tag == TagLangString && va.Lang != vb.Lang {
			return orderOfStrings(va.Lang, vb.Lang), nil
		}
		return orderOfStrings(va.Str, vb.Str), nil
	}
	return 0, NewInvalidCompareError(a, b)
}

func compareNumeric(va, vb TypedValue) (Order, error) {
	join, _ := JoinNumeric(va.Tag, vb.Tag)
	pa, err := promoteTo(va, join)
	if err != nil {
		return 0, err
	}
	pb, err := promoteTo(vb, join)
	if err != nil {
		return 0, err
	}
	switch join {
	case TagInteger:
		return Order(clampCmp(pa.Int.Cmp(pb.Int))), nil
	case TagDecimal:
		return Order(clampCmp(pa.Dec.Cmp(pb.Dec))), nil
	case TagFloat:
		return orderFloat(float64(pa.Float32), float64(pb.Float32)), nil
	default:
		return orderFloat(pa.Float64, pb.Float64), nil
	}
}

// clampCmp normalizes a {negative, zero, positive} Cmp result to
// {-1, 0, 1}, matching the Order constants directly.
func clampCmp(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	default:
		return 0
	}
}

func orderFloat(a, b float64) Order {
	switch {
	case a < b:
		return OrderLess
	case a > b:
		return OrderGreater
	default:
		return OrderEqual
	}
}

// ValueEqual implements SPARQL's "=" operator semantics for the subset
// of types where value equality is well defined independent of operator
// overload resolution: numerics (after promotion), booleans, plain and
// language-tagged strings, and dateTimes. sameTerm is strictly stronger
// (see term.go): "1"^^xsd:integer = "1.0"^^xsd:decimal is true here but
// false under SameTerm.
func ValueEqual(a, b Term) (bool, error) {
	va, vb := TypedValueOf(a), TypedValueOf(b)
	switch {
	case va.Tag.IsNumeric() && vb.Tag.IsNumeric():
		ord, err := compareNumeric(va, vb)
		return err == nil && ord == OrderEqual, err
	case va.Tag == TagBoolean && vb.Tag == TagBoolean:
		return va.Bool == vb.Bool, nil
	case va.Tag == TagDateTime && vb.Tag == TagDateTime:
		return va.Time.Equal(vb.Time), nil
	case va.Tag == TagString && vb.Tag == TagString:
		return va.Str == vb.Str, nil
	case va.Tag == TagLangString && vb.Tag == TagLangString:
		return va.Str == vb.Str && va.Lang == vb.Lang, nil
	case va.Tag == TagNonLexical || vb.Tag == TagNonLexical:
		return false, NewInvalidLexicalFormError("=", pickNonLexical(a, va, b, vb))
	default:
		// Different incomparable categories (e.g. a string vs a
		// dateTime, or an IRI): SPARQL defines "=" as false rather
		// than an error in this case, mirroring RDF term
		// non-equality, except sameTerm-identical raw terms.
		return SameTerm(a, b), nil
	}
}

func pickNonLexical(a Term, va TypedValue, b Term, vb TypedValue) Term {
	if va.Tag == TagNonLexical {
		return a
	}
	return b
}

// PromoteNumeric promotes v to the target numeric tag, per the
// numeric-promotion step of overload dispatch (spec §4.2 step 3). It is
// exported for the registry package, which retries a failed exact-tuple
// lookup by promoting every numeric operand to their lattice join.
func PromoteNumeric(v TypedValue, target TypeTag) (TypedValue, error) {
	return promoteTo(v, target)
}

// promoteTo promotes v to the target numeric tag. Promoting a
// TagNonLexical operand fails with InvalidLexicalFormError, matching
// registry dispatch step 3's "promotion of a nonLexical numeric fails"
// rule.
func promoteTo(v TypedValue, target TypeTag) (TypedValue, error) {
	if v.Tag == TagNonLexical {
		return TypedValue{}, NewInvalidLexicalFormError("numeric promotion", v.Source)
	}
	if v.Tag == target {
		return v, nil
	}
	switch target {
	case TagDecimal:
		return TypedValue{Tag: TagDecimal, Dec: toDecimal(v)}, nil
	case TagFloat:
		return TypedValue{Tag: TagFloat, Float32: float32(toFloat64(v))}, nil
	case TagDouble:
		return TypedValue{Tag: TagDouble, Float64: toFloat64(v)}, nil
	default:
		// Promoting "up" from nothing lower than integer ever
		// happens, since integer is rank 0; this branch is
		// unreachable for a numeric v.
		return v, nil
	}
}
