package registry

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/knakk/sparqleval"
	"github.com/knakk/sparqleval/expr"
)

const (
	OpStrLen       expr.Operator = "STRLEN"
	OpUCase        expr.Operator = "UCASE"
	OpLCase        expr.Operator = "LCASE"
	OpContains     expr.Operator = "CONTAINS"
	OpStrStarts    expr.Operator = "STRSTARTS"
	OpStrEnds      expr.Operator = "STRENDS"
	OpSubstr       expr.Operator = "SUBSTR"
	OpConcat       expr.Operator = "CONCAT"
	OpReplace      expr.Operator = "REPLACE"
	OpEncodeForURI expr.Operator = "ENCODE_FOR_URI"
	OpStrBefore    expr.Operator = "STRBEFORE"
	OpStrAfter     expr.Operator = "STRAFTER"
	OpRegex        expr.Operator = "REGEX"
)

// stringArg extracts the lexical form of a string or langString operand.
// Callers only invoke this from entries already registered under
// TagString/TagLangString tuples, so the type assertion inside
// TypedValueOf never falls through to a panic-worthy case.
func stringArg(t sparqleval.Term) string {
	return sparqleval.TypedValueOf(t).Str
}

func registerStringFuncs(b *builder) {
	b.registerAnyStringLike(OpStrLen, 1, func(args []sparqleval.Term) (sparqleval.Term, error) {
		n := len([]rune(stringArg(args[0])))
		return sparqleval.NewIntegerLiteral(strconv.Itoa(n)), nil
	})
	b.registerAnyStringLike(OpUCase, 1, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return preserveStringKind(args[0], strings.ToUpper(stringArg(args[0]))), nil
	})
	b.registerAnyStringLike(OpLCase, 1, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return preserveStringKind(args[0], strings.ToLower(stringArg(args[0]))), nil
	})
	b.registerAnyStringLike(OpContains, 2, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return sparqleval.NewBooleanLiteral(strings.Contains(stringArg(args[0]), stringArg(args[1]))), nil
	})
	b.registerAnyStringLike(OpStrStarts, 2, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return sparqleval.NewBooleanLiteral(strings.HasPrefix(stringArg(args[0]), stringArg(args[1]))), nil
	})
	b.registerAnyStringLike(OpStrEnds, 2, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return sparqleval.NewBooleanLiteral(strings.HasSuffix(stringArg(args[0]), stringArg(args[1]))), nil
	})
	b.registerAnyStringLike(OpConcat, 2, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return sparqleval.NewStringLiteral(stringArg(args[0]) + stringArg(args[1])), nil
	})
	b.registerAnyStringLike(OpStrBefore, 2, func(args []sparqleval.Term) (sparqleval.Term, error) {
		s, sep := stringArg(args[0]), stringArg(args[1])
		if i := strings.Index(s, sep); i >= 0 {
			return preserveStringKind(args[0], s[:i]), nil
		}
		return sparqleval.NewStringLiteral(""), nil
	})
	b.registerAnyStringLike(OpStrAfter, 2, func(args []sparqleval.Term) (sparqleval.Term, error) {
		s, sep := stringArg(args[0]), stringArg(args[1])
		if i := strings.Index(s, sep); i >= 0 {
			return preserveStringKind(args[0], s[i+len(sep):]), nil
		}
		return sparqleval.NewStringLiteral(""), nil
	})

	// SUBSTR(str, start) and SUBSTR(str, start, len): both arities are
	// registered under the one OpSubstr name; the Table records the set
	// of arities each operator accepts.
	b.register(OpSubstr, []sparqleval.TypeTag{sparqleval.TagString, sparqleval.TagInteger}, substr2)
	b.register(OpSubstr, []sparqleval.TypeTag{sparqleval.TagLangString, sparqleval.TagInteger}, substr2)
	b.register(OpSubstr, []sparqleval.TypeTag{sparqleval.TagString, sparqleval.TagInteger, sparqleval.TagInteger}, substr3)
	b.register(OpSubstr, []sparqleval.TypeTag{sparqleval.TagLangString, sparqleval.TagInteger, sparqleval.TagInteger}, substr3)

	b.registerAnyStringLike(OpEncodeForURI, 1, func(args []sparqleval.Term) (sparqleval.Term, error) {
		return sparqleval.NewStringLiteral(encodeForURI(stringArg(args[0]))), nil
	})

	b.registerAnyStringLike(OpReplace, 3, func(args []sparqleval.Term) (sparqleval.Term, error) {
		re, err := compileRegex(stringArg(args[1]))
		if err != nil {
			return nil, sparqleval.NewInvalidArgumentTypesError(string(OpReplace), nil, args)
		}
		return preserveStringKind(args[0], re.ReplaceAllString(stringArg(args[0]), stringArg(args[2]))), nil
	})

	b.registerAnyStringLike(OpRegex, 2, func(args []sparqleval.Term) (sparqleval.Term, error) {
		re, err := compileRegex(stringArg(args[1]))
		if err != nil {
			return nil, sparqleval.NewInvalidArgumentTypesError(string(OpRegex), nil, args)
		}
		return sparqleval.NewBooleanLiteral(re.MatchString(stringArg(args[0]))), nil
	})
}

func substr2(args []sparqleval.Term) (sparqleval.Term, error) {
	s := []rune(stringArg(args[0]))
	start := substrStart(args[1], len(s))
	return preserveStringKind(args[0], string(s[start:])), nil
}

func substr3(args []sparqleval.Term) (sparqleval.Term, error) {
	s := []rune(stringArg(args[0]))
	start := substrStart(args[1], len(s))
	length := int(sparqleval.TypedValueOf(args[2]).Int.Int64())
	if length < 0 {
		length = 0
	}
	end := start + length
	if end > len(s) {
		end = len(s)
	}
	return preserveStringKind(args[0], string(s[start:end])), nil
}

// substrStart converts SUBSTR's 1-indexed, possibly out-of-range start
// argument to a clamped 0-indexed rune offset into a string of the given
// length.
func substrStart(startArg sparqleval.Term, length int) int {
	start := int(sparqleval.TypedValueOf(startArg).Int.Int64()) - 1
	if start < 0 {
		start = 0
	}
	if start > length {
		start = length
	}
	return start
}

// preserveStringKind rebuilds a string-like result with the same
// langString-or-plain kind (and language tag) as the original operand,
// per SPARQL's rule that most string functions preserve the argument's
// language when it is language-tagged.
func preserveStringKind(original sparqleval.Term, result string) sparqleval.Term {
	if lit, ok := original.(sparqleval.Literal); ok && lit.Lang != "" {
		return sparqleval.NewLangLiteral(result, lit.Lang)
	}
	return sparqleval.NewStringLiteral(result)
}

// encodeForURI percent-encodes s per RFC 3986's unreserved set
// (ALPHA / DIGIT / "-" / "." / "_" / "~"), matching XPath's
// fn:encode-for-uri. net/url's QueryEscape/PathEscape both follow
// application/x-www-form-urlencoded or path-segment rules instead (e.g.
// QueryEscape turns a space into "+", not "%20"), so neither is a direct
// substitute here.
func encodeForURI(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xf])
		}
	}
	return b.String()
}

// regexCache memoizes compiled patterns: REGEX/REPLACE are typically
// called with a constant pattern across every row of a result set, so
// recompiling per call would be wasteful. regexp.Regexp is safe for
// concurrent use once compiled.
var regexCache sync.Map // string -> *regexp.Regexp

func compileRegex(pattern string) (*regexp.Regexp, error) {
	if v, ok := regexCache.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	regexCache.Store(pattern, re)
	return re, nil
}
