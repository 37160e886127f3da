package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/zephyrtronium/alvin"
	"github.com/zephyrtronium/alvin/config"
	"github.com/zephyrtronium/alvin/testutils"
)

func runREPL(t *testing.T, input string, debug bool) (string, int) {
	t.Helper()
	var out bytes.Buffer
	in := testutils.NewTestInterp(alvin.WithStdio(nil, &out))
	cfg := config.Default()
	cfg.CollectEvery = 1
	r := &repl{in: in, cfg: cfg, out: &out, debug: debug}
	lr := &scanReader{sc: bufio.NewScanner(strings.NewReader(input)), out: &out}
	code := r.run(lr)
	r.close()
	return out.String(), code
}

// TestREPL tests evaluating input through the read-eval-print loop.
func TestREPL(t *testing.T) {
	cases := map[string]struct {
		input string
		want  string
	}{
		"Value":     {"(+ 1 2)\n", "3\n"},
		"None":      {"(set x 1)\n", ""},
		"Show":      {"(show 'hi)\n", "hi\n"},
		"Multiline": {"(+ 1\n2\n3)\n", "6\n"},
		"Two":       {"(set y 2)\n(* y y)\n", "4\n"},
		"Error":     {"(car '())\n(+ 2 2)\n", "AccessorError: "},
		"Undefined": {"nothing\n", "UndefinedVariable: "},
		"Unmatched": {"(+ 1 2))\n5\n", "SyntaxError: "},
		"Keyword":   {"car\n", "car is an operator, built-in function or reserved word.\n"},
		"Quit":      {"quit\n(show 'after)\n", ""},
		"Extension": {"@start\n#INCLUDE sq as sq\n(lambda (n) (* n n))\n@end\n(sq 3)\n", "9\n"},
		"Comment":   {"-- nothing here\n(+ 1 1)\n", "2\n"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, code := runREPL(t, c.input, false)
			if code != 0 {
				t.Errorf("wrong exit status: want 0, got %d", code)
			}
			if !strings.Contains(got, c.want) || (c.want == "" && got != "") {
				t.Errorf("wrong output: want %q, got %q", c.want, got)
			}
		})
	}
}

// TestREPLContinues tests that an error does not end the loop unless in
// debug mode.
func TestREPLContinues(t *testing.T) {
	const input = "(car '())\n(+ 2 2)\n"
	got, code := runREPL(t, input, false)
	if code != 0 || !strings.HasSuffix(got, "4\n") {
		t.Errorf("loop did not continue after error: %d %q", code, got)
	}
	got, code = runREPL(t, input, true)
	if code != 1 || strings.Contains(got, "4\n") {
		t.Errorf("debug mode did not stop at error: %d %q", code, got)
	}
}

// TestREPLExit tests that sys.exit ends the loop with its status.
func TestREPLExit(t *testing.T) {
	got, code := runREPL(t, "(import sys)\n(sys.exit 4)\n(show 'after)\n", false)
	if code != 4 {
		t.Errorf("wrong exit status: want 4, got %d", code)
	}
	if strings.Contains(got, "after") {
		t.Errorf("loop continued after exit: %q", got)
	}
}

// TestREPLCommands tests the REPL commands.
func TestREPLCommands(t *testing.T) {
	cases := map[string]string{
		"help":           "keywords  :",
		"keywords":       "REGULAR",
		"dev.info":       "dev.env",
		"dev.env":        "Scope 0",
		"dev.globals":    "No global variables found.",
		"dev.imports":    "No imported modules found.",
		"dev.closures":   "No function environments found.",
		"dev.extensions": "No extensions registered.",
	}
	for cmd, want := range cases {
		t.Run(cmd, func(t *testing.T) {
			got, _ := runREPL(t, cmd+"\n", false)
			if !strings.Contains(got, want) {
				t.Errorf("%s output lacks %q:\n%s", cmd, want, got)
			}
		})
	}
	t.Run("populated", func(t *testing.T) {
		got, _ := runREPL(t, "(global g 1)\n(import math as m)\n(set f (lambda () 1))\ndev.globals\ndev.imports\ndev.closures\n", false)
		for _, want := range []string{"g : 1", "math alias m", "Scope 0"} {
			if !strings.Contains(got, want) {
				t.Errorf("output lacks %q:\n%s", want, got)
			}
		}
	})
}
