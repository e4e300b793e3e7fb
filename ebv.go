package sparqleval

// CoerceEBV computes a Term's Effective Boolean Value per SPARQL 1.1
// §17.2.2: booleans pass through, numerics are false iff zero or NaN,
// strings (plain or language-tagged) are false iff empty, and every
// other term kind — IRIs, blank nodes, non-lexical or otherwise-typed
// literals — fails with EBVError.
func CoerceEBV(t Term) (bool, error) {
	v := TypedValueOf(t)
	switch v.Tag {
	case TagBoolean:
		return v.Bool, nil
	case TagString, TagLangString:
		return v.Str != "", nil
	case TagInteger:
		return v.Int.Sign() != 0, nil
	case TagDecimal:
		return !v.Dec.IsZero(), nil
	case TagFloat:
		f := float64(v.Float32)
		return f != 0 && f == f, nil // f == f is false for NaN
	case TagDouble:
		return v.Float64 != 0 && v.Float64 == v.Float64, nil
	default:
		return false, NewEBVError(t)
	}
}
