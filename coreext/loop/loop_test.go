package loop_test

import (
	"bytes"
	"testing"

	"github.com/zephyrtronium/alvin"
	_ "github.com/zephyrtronium/alvin/coreext/loop" // side effects
	"github.com/zephyrtronium/alvin/testutils"
)

// TestLoop tests counting loops through the loop extension.
func TestLoop(t *testing.T) {
	in := testutils.NewTestInterp()
	if err := in.Extend("#INCLUDE loop as loop\n"); err != nil {
		t.Fatal(err)
	}
	cases := map[string]testutils.SourceTestCase{
		"Sum":       {Source: `(set lsum 0) (loop for i in range 0 5 (update lsum (+ lsum i))) lsum`, Pass: testutils.PassPrint("10")},
		"Step":      {Source: `(set lstep '()) (loop for i in range 0 10 3 (update lstep (append lstep (list i)))) lstep`, Pass: testutils.PassPrint("(0 3 6 9)")},
		"Down":      {Source: `(set ldown '()) (loop for i in range 3 0 -1 (update ldown (cons i ldown))) ldown`, Pass: testutils.PassPrint("(1 2 3)")},
		"Empty":     {Source: `(loop for i in range 5 0 (show i))`, Pass: testutils.PassNil()},
		"Last":      {Source: `(loop for i in range 0 4 (* i i))`, Pass: testutils.PassPrint("9")},
		"Evaluated": {Source: `(set lhi 3) (loop for i in range 0 (+ lhi 1) i)`, Pass: testutils.PassPrint("3")},
		"Scoped":    {Source: `(loop for lvar in range 0 2 lvar) lvar`, Pass: testutils.PassError(new(*alvin.UndefinedVariable))},
		"ZeroStep":  {Source: `(loop for i in range 0 5 0 i)`, Pass: testutils.PassError(new(*alvin.ArithmeticError))},
		"Float":     {Source: `(loop for i in range 0 2.5 i)`, Pass: testutils.PassError(new(*alvin.TypeError))},
		"Shape":     {Source: `(loop each i in range 0 2 i)`, Pass: testutils.PassError(new(*alvin.TypeError))},
		"Arity":     {Source: `(loop for i in range 0)`, Pass: testutils.PassError(new(*alvin.ArityError))},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := in.DoString(c.Source)
			if !c.Pass(r, err) {
				t.Errorf("%q produced wrong result: %s %v", c.Source, alvin.Print(r), err)
			}
		})
	}
}

// TestLoopShow tests that the body runs once per step.
func TestLoopShow(t *testing.T) {
	var out bytes.Buffer
	in := testutils.NewTestInterp(alvin.WithStdio(nil, &out))
	if err := in.Extend("#INCLUDE loop as loop\n"); err != nil {
		t.Fatal(err)
	}
	if _, err := in.DoString(`(loop for i in range 1 4 (show i))`); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "1\n2\n3\n" {
		t.Errorf("wrong output: want %q, got %q", "1\n2\n3\n", got)
	}
}
