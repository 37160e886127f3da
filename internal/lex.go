package internal

import (
	"strings"
	"unicode"
)

// Tokenize splits source text into tokens. Parentheses and the quote mark are
// always tokens of their own; everything else is separated by whitespace.
func Tokenize(src string) []string {
	var toks []string
	start := -1
	flush := func(end int) {
		if start >= 0 {
			toks = append(toks, src[start:end])
			start = -1
		}
	}
	for i, r := range src {
		switch {
		case r == '(' || r == ')' || r == '\'':
			flush(i)
			toks = append(toks, string(r))
		case unicode.IsSpace(r):
			flush(i)
		case start < 0:
			start = i
		}
	}
	flush(len(src))
	return toks
}

// StripComments removes comments from source text. A line comment starts with
// -- at the start of a line or after whitespace and runs to the end of the
// line. A block comment runs from /- to the next -/. Newlines are kept so that
// extension blocks keep their line structure.
func StripComments(src string) string {
	if !strings.Contains(src, "--") && !strings.Contains(src, "/-") {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); {
		switch {
		case strings.HasPrefix(src[i:], "/-"):
			end := strings.Index(src[i+2:], "-/")
			if end < 0 {
				// Unterminated block comments run to the end of the source.
				b.WriteString(strings.Repeat("\n", strings.Count(src[i:], "\n")))
				return b.String()
			}
			b.WriteString(strings.Repeat("\n", strings.Count(src[i:i+2+end], "\n")))
			i += end + 4
		case strings.HasPrefix(src[i:], "--") && (i == 0 || isSpaceByte(src[i-1])):
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				return b.String()
			}
			i += end
		default:
			b.WriteByte(src[i])
			i++
		}
	}
	return b.String()
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// checkBalance verifies that every close paren has a preceding open paren and
// that every open paren is closed.
func checkBalance(toks []string) error {
	depth := 0
	for _, t := range toks {
		switch t {
		case "(":
			depth++
		case ")":
			depth--
			if depth < 0 {
				return &SyntaxError{Kind: UnmatchedParenthesis, Near: t, Msg: "unexpected close parenthesis"}
			}
		}
	}
	if depth > 0 {
		return &SyntaxError{Kind: UnmatchedParenthesis, Msg: "unclosed parenthesis"}
	}
	return nil
}

// Complete reports whether src is a complete chunk of input: either balanced
// expressions or an extension block closed by @end. It returns an error only
// when no further input could complete src, i.e. when it has more close parens
// than open ones.
func Complete(src string) (bool, error) {
	src = StripComments(src)
	trimmed := strings.TrimSpace(src)
	if strings.HasPrefix(trimmed, extStart) {
		for _, line := range strings.Split(trimmed, "\n") {
			if strings.TrimSpace(line) == extEnd {
				return true, nil
			}
		}
		return false, nil
	}
	depth := 0
	for _, t := range Tokenize(src) {
		switch t {
		case "(":
			depth++
		case ")":
			depth--
			if depth < 0 {
				return false, &SyntaxError{Kind: UnmatchedParenthesis, Near: t, Msg: "unexpected close parenthesis"}
			}
		}
	}
	return depth == 0, nil
}
