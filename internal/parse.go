package internal

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches the text of numeric literals. An exponent makes the
// literal a float.
var numberPattern = regexp.MustCompile(`^-?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// Parse reads every top-level form in src. Comments are stripped first.
// isKeyword identifies keyword tokens, which may not appear adjacent to each
// other; it may be nil to skip that check.
func Parse(src string, isKeyword func(Symbol) bool) (List, error) {
	toks := Tokenize(StripComments(src))
	if err := checkBalance(toks); err != nil {
		return nil, err
	}
	if isKeyword != nil {
		if err := checkAdjacentKeywords(toks, isKeyword); err != nil {
			return nil, err
		}
	}
	p := parser{toks: toks}
	var forms List
	for p.pos < len(p.toks) {
		v, err := p.next()
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
	}
	return forms, nil
}

// checkAdjacentKeywords rejects two keyword tokens in a row. delex names the
// keyword it withdraws, so it is exempt.
func checkAdjacentKeywords(toks []string, isKeyword func(Symbol) bool) error {
	for i := 1; i < len(toks); i++ {
		a, b := toks[i-1], toks[i]
		if isParen(a) || isParen(b) || a == "'" || b == "'" || a == "delex" {
			continue
		}
		if isKeyword(Symbol(a)) && isKeyword(Symbol(b)) {
			return &SyntaxError{Kind: InvalidExpressionStructure, Near: a + " " + b, Msg: "adjacent keywords"}
		}
	}
	return nil
}

func isParen(t string) bool {
	return t == "(" || t == ")"
}

// parser groups balanced tokens into nested lists.
type parser struct {
	toks []string
	pos  int
}

// next parses the form starting at the current token.
func (p *parser) next() (Value, error) {
	t := p.toks[p.pos]
	p.pos++
	switch t {
	case "(":
		l := List{}
		for p.toks[p.pos] != ")" {
			v, err := p.next()
			if err != nil {
				return nil, err
			}
			l = append(l, v)
		}
		p.pos++
		return l, nil
	case "'":
		if p.pos >= len(p.toks) || p.toks[p.pos] == ")" {
			return nil, &SyntaxError{Kind: DanglingQuote, Near: t, Msg: "nothing to quote"}
		}
		v, err := p.next()
		if err != nil {
			return nil, err
		}
		return List{Symbol("quote"), v}, nil
	case ")":
		// checkBalance rules this out.
		return nil, &SyntaxError{Kind: UnmatchedParenthesis, Near: t, Msg: "unexpected close parenthesis"}
	}
	return Atom(t), nil
}

// Atom converts a single token to a number, boolean, or symbol.
func Atom(t string) Value {
	switch t {
	case "#t":
		return Bool(true)
	case "#f":
		return Bool(false)
	}
	if isNumeric(Symbol(t)) {
		if !strings.ContainsAny(t, ".eE") {
			if n, err := strconv.ParseInt(t, 10, 64); err == nil {
				return Int(n)
			}
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return Float(f)
		}
	}
	return Symbol(t)
}

// isNumeric reports whether a symbol spells a number.
func isNumeric(s Symbol) bool {
	if s == "" {
		return false
	}
	// Most symbols are names; reject them before running the pattern.
	switch c := s[0]; {
	case c >= '0' && c <= '9', c == '-', c == '.':
		return numberPattern.MatchString(string(s))
	}
	return false
}

// ReadAll parses every top-level form in src using the interpreter's keywords.
func (in *Interp) ReadAll(src string) (List, error) {
	return Parse(src, in.Keywords.IsKeyword)
}

// Read parses src and returns its last top-level form, or nil if src holds no
// forms.
func (in *Interp) Read(src string) (Value, error) {
	forms, err := in.ReadAll(src)
	if err != nil || len(forms) == 0 {
		return nil, err
	}
	return forms[len(forms)-1], nil
}
