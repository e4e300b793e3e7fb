package registry

import (
	"fmt"
	"math/big"

	"github.com/knakk/sparqleval"
	"github.com/knakk/sparqleval/expr"
	"github.com/shopspring/decimal"
)

// NOW() is intentionally absent from this table: it is not a pure
// function of its (zero) operands, since its result depends on the
// injected Now() hook pinned for the duration of a query (spec §6). The
// tree evaluator in package eval special-cases the NOW operator instead
// of routing it through Resolve.
const (
	OpYear     expr.Operator = "YEAR"
	OpMonth    expr.Operator = "MONTH"
	OpDay      expr.Operator = "DAY"
	OpHours    expr.Operator = "HOURS"
	OpMinutes  expr.Operator = "MINUTES"
	OpSeconds  expr.Operator = "SECONDS"
	OpTimezone expr.Operator = "TIMEZONE"
	OpTZ       expr.Operator = "TZ"
)

func registerDateFuncs(b *builder) {
	dateField := func(op expr.Operator, impl func(v sparqleval.TypedValue) sparqleval.Term) {
		b.register(op, []sparqleval.TypeTag{sparqleval.TagDateTime}, func(args []sparqleval.Term) (sparqleval.Term, error) {
			return impl(sparqleval.TypedValueOf(args[0])), nil
		})
	}

	dateField(OpYear, func(v sparqleval.TypedValue) sparqleval.Term {
		return sparqleval.TypedValue{Tag: sparqleval.TagInteger, Int: big.NewInt(int64(v.Time.Year()))}.AsTerm()
	})
	dateField(OpMonth, func(v sparqleval.TypedValue) sparqleval.Term {
		return sparqleval.TypedValue{Tag: sparqleval.TagInteger, Int: big.NewInt(int64(v.Time.Month()))}.AsTerm()
	})
	dateField(OpDay, func(v sparqleval.TypedValue) sparqleval.Term {
		return sparqleval.TypedValue{Tag: sparqleval.TagInteger, Int: big.NewInt(int64(v.Time.Day()))}.AsTerm()
	})
	dateField(OpHours, func(v sparqleval.TypedValue) sparqleval.Term {
		return sparqleval.TypedValue{Tag: sparqleval.TagInteger, Int: big.NewInt(int64(v.Time.Hour()))}.AsTerm()
	})
	dateField(OpMinutes, func(v sparqleval.TypedValue) sparqleval.Term {
		return sparqleval.TypedValue{Tag: sparqleval.TagInteger, Int: big.NewInt(int64(v.Time.Minute()))}.AsTerm()
	})
	dateField(OpSeconds, func(v sparqleval.TypedValue) sparqleval.Term {
		sec := decimal.NewFromInt(int64(v.Time.Second())).Add(decimal.New(int64(v.Time.Nanosecond()), -9))
		return sparqleval.TypedValue{Tag: sparqleval.TagDecimal, Dec: sec}.AsTerm()
	})
	dateField(OpTimezone, func(v sparqleval.TypedValue) sparqleval.Term {
		_, offset := v.Time.Zone()
		return sparqleval.TypedValue{Tag: sparqleval.TagString, Str: formatDayTimeDuration(offset)}.AsTerm()
	})
	dateField(OpTZ, func(v sparqleval.TypedValue) sparqleval.Term {
		name, offset := v.Time.Zone()
		if offset == 0 && name == "UTC" {
			return sparqleval.NewStringLiteral("Z")
		}
		return sparqleval.NewStringLiteral(formatOffset(offset))
	})
}

// formatDayTimeDuration renders a UTC-offset-in-seconds as an
// xsd:dayTimeDuration lexical form, e.g. "PT1H" for +3600 or "-PT30M"
// for -1800.
func formatDayTimeDuration(offsetSeconds int) string {
	if offsetSeconds == 0 {
		return "PT0S"
	}
	sign := ""
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	h := offsetSeconds / 3600
	m := (offsetSeconds % 3600) / 60
	s := offsetSeconds % 60
	out := sign + "PT"
	if h > 0 {
		out += fmt.Sprintf("%dH", h)
	}
	if m > 0 {
		out += fmt.Sprintf("%dM", m)
	}
	if s > 0 || (h == 0 && m == 0) {
		out += fmt.Sprintf("%dS", s)
	}
	return out
}

func formatOffset(offsetSeconds int) string {
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	return fmt.Sprintf("%s%02d:%02d", sign, offsetSeconds/3600, (offsetSeconds%3600)/60)
}
