package internal

import (
	"math"
	"strconv"
	"strings"
)

// Print renders v as source text. Printing the result of reading printed text
// yields the same text. None prints as nothing, so list elements that are
// None are omitted.
func Print(v Value) string {
	if v == nil {
		return ""
	}
	var b strings.Builder
	printTo(&b, v)
	return b.String()
}

func printTo(b *strings.Builder, v Value) {
	switch x := v.(type) {
	case nil:
	case Int:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case Float:
		b.WriteString(FormatFloat(float64(x)))
	case Bool:
		if x {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case Symbol:
		b.WriteString(string(x))
	case Quoted:
		printTo(b, x.Datum)
	case List:
		if isQuoteForm(x) {
			b.WriteByte('\'')
			printTo(b, x[1])
			return
		}
		b.WriteByte('(')
		first := true
		for _, e := range x {
			if e == nil {
				continue
			}
			if !first {
				b.WriteByte(' ')
			}
			first = false
			printTo(b, e)
		}
		b.WriteByte(')')
	case *Function:
		b.WriteString(x.String())
	case *Template:
		b.WriteString("<template " + string(x.Name) + ">")
	case *Instance:
		b.WriteString("<" + string(x.Template.Name) + " instance>")
	case *Module:
		b.WriteString("<module " + string(x.Name) + ">")
	case *Builtin:
		b.WriteString("<builtin " + string(x.Name) + ">")
	}
}

// isQuoteForm reports whether l is (quote X).
func isQuoteForm(l List) bool {
	if len(l) != 2 {
		return false
	}
	s, ok := TextOf(l[0])
	return ok && s == "quote"
}

// FormatFloat formats a float so that it reads back as a float: integral
// values keep a trailing .0, and very large or small magnitudes use exponents.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	a := math.Abs(f)
	if a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
