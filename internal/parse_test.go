package internal

import (
	"errors"
	"reflect"
	"testing"
)

// TestTokenize tests that parentheses and quotes split tokens regardless of
// surrounding whitespace.
func TestTokenize(t *testing.T) {
	cases := map[string]struct {
		src  string
		want []string
	}{
		"Empty":      {"", nil},
		"Atom":       {"abc", []string{"abc"}},
		"List":       {"(+ 1 2)", []string{"(", "+", "1", "2", ")"}},
		"Nested":     {"((a)b)", []string{"(", "(", "a", ")", "b", ")"}},
		"Quote":      {"'(a 'b)", []string{"'", "(", "a", "'", "b", ")"}},
		"Whitespace": {"\t a\n\r b  ", []string{"a", "b"}},
		"Unicode":    {"(α β)", []string{"(", "α", "β", ")"}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got := Tokenize(c.src)
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("wrong tokens for %q: want %q, got %q", c.src, c.want, got)
			}
		})
	}
}

// TestStripComments tests that line and block comments are removed while
// newlines are kept.
func TestStripComments(t *testing.T) {
	cases := map[string]struct {
		src, want string
	}{
		"None":            {"(+ 1 2)", "(+ 1 2)"},
		"Line":            {"(+ 1 2) -- three\n(a)", "(+ 1 2) \n(a)"},
		"LineStart":       {"-- all\nb", "\nb"},
		"LineAtEnd":       {"a -- b", "a "},
		"InsideWord":      {"a--b", "a--b"},
		"Block":           {"a /- b\nc -/ d", "a \n d"},
		"UnterminatedBlk": {"a /- b\nc", "a \n"},
		"Negative":        {"(- 1 -2)", "(- 1 -2)"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got := StripComments(c.src)
			if got != c.want {
				t.Errorf("wrong result for %q: want %q, got %q", c.src, c.want, got)
			}
		})
	}
}

// TestAtom tests conversion of single tokens.
func TestAtom(t *testing.T) {
	cases := map[string]struct {
		tok  string
		want Value
	}{
		"Int":         {"42", Int(42)},
		"NegativeInt": {"-7", Int(-7)},
		"Float":       {"2.5", Float(2.5)},
		"LeadingDot":  {".5", Float(0.5)},
		"True":        {"#t", Bool(true)},
		"False":       {"#f", Bool(false)},
		"Symbol":      {"x", Symbol("x")},
		"Minus":       {"-", Symbol("-")},
		"TrailingDot": {"1.", Symbol("1.")},
		"Huge":        {"99999999999999999999", Float(1e20)},
		"Exponent":    {"1e+23", Float(1e23)},
		"NegExponent": {"1e-08", Float(1e-8)},
		"BareExp":     {"2E3", Float(2000)},
		"FracExp":     {"-1.5e2", Float(-150)},
		"ExpOnly":     {"e5", Symbol("e5")},
		"ExpNoDigits": {"1e", Symbol("1e")},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got := Atom(c.tok)
			if got != c.want {
				t.Errorf("wrong atom for %q: want %#v, got %#v", c.tok, c.want, got)
			}
		})
	}
}

// TestParseRoundTrip tests that printing parsed source reproduces it.
func TestParseRoundTrip(t *testing.T) {
	cases := map[string]string{
		"Atom":      "x",
		"Int":       "12",
		"Float":     "1.5",
		"Integral":  "3.0",
		"Bool":      "#t",
		"List":      "(+ 1 2)",
		"Empty":     "()",
		"Nested":    "(a (b (c)) d)",
		"Quote":     "'x",
		"QuoteList": "'(1 2 3)",
		"Lambda":    "(lambda (n) (* n n))",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			forms, err := Parse(src, nil)
			if err != nil {
				t.Fatalf("could not parse %q: %v", src, err)
			}
			if len(forms) != 1 {
				t.Fatalf("wrong number of forms from %q: want 1, got %d", src, len(forms))
			}
			if got := Print(forms[0]); got != src {
				t.Errorf("wrong round trip: want %q, got %q", src, got)
			}
		})
	}
}

// TestFormatFloatReads tests that printed floats read back as equal floats.
func TestFormatFloatReads(t *testing.T) {
	cases := map[string]float64{
		"Large":    1e23,
		"Small":    1e-8,
		"Integral": 6,
		"Fraction": -0.125,
		"Precise":  1.2345678901234567e-5,
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			s := FormatFloat(f)
			got, ok := Atom(s).(Float)
			if !ok {
				t.Fatalf("%q read back as %#v", s, Atom(s))
			}
			if float64(got) != f {
				t.Errorf("wrong value from %q: want %v, got %v", s, f, got)
			}
		})
	}
}

// TestParseForms tests that Parse produces the expected structure.
func TestParseForms(t *testing.T) {
	forms, err := Parse("(set x 1) 'y\n(f (g))", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := List{
		List{Symbol("set"), Symbol("x"), Int(1)},
		List{Symbol("quote"), Symbol("y")},
		List{Symbol("f"), List{Symbol("g")}},
	}
	if !reflect.DeepEqual(forms, want) {
		t.Errorf("wrong forms: want %v, got %v", want, forms)
	}
}

// TestParseErrors tests that malformed source produces the right kind of
// syntax error.
func TestParseErrors(t *testing.T) {
	kw := func(s Symbol) bool { return s == "set" || s == "show" }
	cases := map[string]struct {
		src  string
		kind SyntaxKind
	}{
		"Unclosed":        {"(+ 1 2", UnmatchedParenthesis},
		"ExtraClose":      {"(+ 1 2))", UnmatchedParenthesis},
		"CloseFirst":      {")(", UnmatchedParenthesis},
		"AdjacentKeyword": {"(show set)", InvalidExpressionStructure},
		"DanglingEnd":     {"(a) '", DanglingQuote},
		"DanglingClose":   {"(a ')", DanglingQuote},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(c.src, kw)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("wrong error parsing %q: want *SyntaxError, got %v", c.src, err)
			}
			if se.Kind != c.kind {
				t.Errorf("wrong kind parsing %q: want %v, got %v", c.src, c.kind, se.Kind)
			}
		})
	}
}

// TestComplete tests detection of complete REPL input.
func TestComplete(t *testing.T) {
	cases := map[string]struct {
		src  string
		want bool
		err  bool
	}{
		"Empty":       {"", true, false},
		"Atom":        {"x", true, false},
		"Balanced":    {"(+ 1 (* 2 3))", true, false},
		"Open":        {"(+ 1 (* 2 3)", false, false},
		"Closed":      {"(+ 1))", false, true},
		"Comment":     {"(+ 1 -- )\n", false, false},
		"ExtOpen":     {"@start\n#INCLUDE loop as for\n", false, false},
		"ExtClosed":   {"@start\n#INCLUDE loop as for\n@end\n", true, false},
		"ExtWithBody": {"@start\n#INCLUDE f as f\n(lambda (x)\n@end", true, false},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Complete(c.src)
			if (err != nil) != c.err {
				t.Errorf("wrong error for %q: %v", c.src, err)
			}
			if got != c.want {
				t.Errorf("wrong completeness for %q: want %t, got %t", c.src, c.want, got)
			}
		})
	}
}

// TestFormatFloat tests that floats print so they read back as floats.
func TestFormatFloat(t *testing.T) {
	cases := map[string]struct {
		f    float64
		want string
	}{
		"Integral": {6, "6.0"},
		"Fraction": {2.5, "2.5"},
		"Negative": {-0.25, "-0.25"},
		"Zero":     {0, "0.0"},
		"Small":    {1e-7, "1e-07"},
		"Large":    {1e20, "1e+20"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := FormatFloat(c.f); got != c.want {
				t.Errorf("wrong format for %v: want %q, got %q", c.f, c.want, got)
			}
		})
	}
}
