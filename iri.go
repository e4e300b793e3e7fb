package sparqleval

// badIRIRunes are characters disallowed inside an IRIREF by the SPARQL
// grammar, adapted from the teacher's Turtle/N-Triples IRI validation
// table down to the subset relevant to a resolved absolute IRI (no
// surrounding '<' '>' to worry about here).
var badIRIRunes = [...]rune{' ', '<', '>', '"', '{', '}', '|', '^', '`', '\\'}

// ValidAbsoluteIRI reports whether s is free of the characters the
// SPARQL/Turtle grammars forbid inside an IRI reference. It does not
// attempt full RFC 3987 validation; the resolved form produced by a
// host's ResolveIRI hook is trusted for scheme/authority structure, and
// this only guards against characters that would make the result
// unparsable if re-serialized.
func ValidAbsoluteIRI(s string) bool {
	for _, r := range s {
		for _, bad := range badIRIRunes {
			if r == bad {
				return false
			}
		}
	}
	return s != ""
}
