package internal_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zephyrtronium/alvin"
	"github.com/zephyrtronium/alvin/testutils"
)

// count is a host extension that returns the number of its operands.
func count(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	return alvin.Int(len(args)), nil
}

// TestRegisterWithdraw tests that registering and then withdrawing an
// extension leaves the store exactly as it was.
func TestRegisterWithdraw(t *testing.T) {
	cases := map[string]string{
		"Empty":       "",
		"Preamble":    "-- extensions for this project\n\n",
		"Existing":    "#INCLUDE twice as dbl\n(lambda (x) (* 2 x))\n\n",
		"PreambleExt": "-- header\n#INCLUDE twice as dbl\n(lambda (x) (* 2 x))\n\n#INCLUDE count as cnt\n\n",
		"NoNewline":   "-- header",
		"NoNewlineWS": "-- header\n\n-- more",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			in := testutils.NewTestInterp()
			in.RegisterHost("count", count)
			store := alvin.NewMemStore(content)
			if err := in.OpenExtensions(store, false); err != nil {
				t.Fatal(err)
			}
			if err := in.Register("foo", count); err != nil {
				t.Fatal(err)
			}
			r, err := in.DoString(`(foo a b c)`)
			if err != nil {
				t.Fatal(err)
			}
			if r != alvin.Int(3) {
				t.Errorf("wrong result from extension: want 3, got %v", r)
			}
			if err := in.Withdraw("foo"); err != nil {
				t.Fatal(err)
			}
			if got := store.String(); got != content {
				t.Errorf("store changed: want %q, got %q", content, got)
			}
			_, err = in.DoString(`(foo)`)
			if !errors.As(err, new(*alvin.UndefinedVariable)) {
				t.Errorf("wrong error after withdraw: want UndefinedVariable, got %v", err)
			}
		})
	}
}

// TestOpenInstalls tests that opening a store installs its definitions.
func TestOpenInstalls(t *testing.T) {
	in := testutils.NewTestInterp()
	in.RegisterHost("count", count)
	store := alvin.NewMemStore("-- header\n#INCLUDE twice as dbl\n(lambda (x) (* 2 x))\n\n#INCLUDE count as cnt\n\n")
	if err := in.OpenExtensions(store, false); err != nil {
		t.Fatal(err)
	}
	cases := map[string]testutils.SourceTestCase{
		"Lisp": {Source: `(dbl (+ 2 2))`, Pass: testutils.PassPrint("8")},
		"Host": {Source: `(cnt 1 2)`, Pass: testutils.PassPrint("2")},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := in.DoString(c.Source)
			if !c.Pass(r, err) {
				t.Errorf("%q produced wrong result: %v %v", c.Source, alvin.Print(r), err)
			}
		})
	}
	want := []alvin.ExtensionInfo{
		{Alias: "dbl", Host: "twice", Lines: 3},
		{Alias: "cnt", Host: "count", Lines: 2},
	}
	got := in.Extensions()
	if len(got) != len(want) {
		t.Fatalf("wrong extensions: want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("wrong extension %d: want %v, got %v", i, want[i], got[i])
		}
	}
}

// TestExtensionOrder tests that new definitions go before older ones and that
// withdrawing one keeps the rest installed.
func TestExtensionOrder(t *testing.T) {
	in := testutils.NewTestInterp()
	store := alvin.NewMemStore("")
	if err := in.OpenExtensions(store, false); err != nil {
		t.Fatal(err)
	}
	if err := in.Register("first", count); err != nil {
		t.Fatal(err)
	}
	if err := in.Register("second", count); err != nil {
		t.Fatal(err)
	}
	want := "#INCLUDE second as second\n\n#INCLUDE first as first\n\n"
	if got := store.String(); got != want {
		t.Errorf("wrong store after registering: want %q, got %q", want, got)
	}
	if err := in.Withdraw("first"); err != nil {
		t.Fatal(err)
	}
	want = "#INCLUDE second as second\n\n"
	if got := store.String(); got != want {
		t.Errorf("wrong store after withdrawing: want %q, got %q", want, got)
	}
	if r, err := in.DoString(`(second x)`); err != nil || r != alvin.Int(1) {
		t.Errorf("remaining extension broken: %v %v", r, err)
	}
}

// TestExtendSource tests extension blocks in source text.
func TestExtendSource(t *testing.T) {
	in := testutils.NewTestInterp()
	store := alvin.NewMemStore("")
	if err := in.OpenExtensions(store, false); err != nil {
		t.Fatal(err)
	}
	src := "@start\n#INCLUDE sq as sq\n(lambda (n) (* n n))\n@end\n(sq 5)"
	r, err := in.DoString(src)
	if err != nil {
		t.Fatal(err)
	}
	if r != alvin.Int(25) {
		t.Errorf("wrong result: want 25, got %v", r)
	}
	want := "#INCLUDE sq as sq\n(lambda (n) (* n n))\n\n"
	if got := store.String(); got != want {
		t.Errorf("wrong store: want %q, got %q", want, got)
	}
	if _, err := in.DoString(`(delex sq)`); err != nil {
		t.Fatal(err)
	}
	if got := store.String(); got != "" {
		t.Errorf("store not empty after delex: %q", got)
	}
}

// TestExtensionErrors tests rejected registrations and withdrawals.
func TestExtensionErrors(t *testing.T) {
	cases := map[string]struct {
		run    func(in *alvin.Interp) error
		target any
	}{
		"WithdrawUnknown": {
			run:    func(in *alvin.Interp) error { return in.Withdraw("nothing") },
			target: new(*alvin.ExtensionWithdrawError),
		},
		"DelexUnknown": {
			run: func(in *alvin.Interp) error {
				_, err := in.DoString(`(delex nothing)`)
				return err
			},
			target: new(*alvin.ExtensionWithdrawError),
		},
		"Keyword": {
			run:    func(in *alvin.Interp) error { return in.Register("car", count) },
			target: new(*alvin.ExtensionError),
		},
		"Duplicate": {
			run: func(in *alvin.Interp) error {
				if err := in.Register("dup", count); err != nil {
					return err
				}
				return in.Register("dup", count)
			},
			target: new(*alvin.ExtensionError),
		},
		"UnknownHost": {
			run:    func(in *alvin.Interp) error { return in.Extend("#INCLUDE nowhere as nw\n") },
			target: new(*alvin.ExtensionError),
		},
		"NotFunction": {
			run:    func(in *alvin.Interp) error { return in.Extend("#INCLUDE five as five\n5\n") },
			target: new(*alvin.ExtensionError),
		},
		"Preamble": {
			run:    func(in *alvin.Interp) error { return in.Extend("stray\n#INCLUDE count as c\n") },
			target: new(*alvin.ExtensionError),
		},
		"Malformed": {
			run:    func(in *alvin.Interp) error { return in.Extend("#INCLUDE a b c d e\n") },
			target: new(*alvin.ExtensionError),
		},
		"Empty": {
			run:    func(in *alvin.Interp) error { return in.Extend("\n\n") },
			target: new(*alvin.ExtensionError),
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			in := testutils.NewTestInterp()
			in.RegisterHost("count", count)
			store := alvin.NewMemStore("")
			if err := in.OpenExtensions(store, false); err != nil {
				t.Fatal(err)
			}
			before := store.String()
			err := c.run(in)
			if !errors.As(err, c.target) {
				t.Fatalf("wrong error: want %T, got %v", c.target, err)
			}
			if name != "Duplicate" && store.String() != before {
				t.Errorf("store changed by failed operation: %q", store.String())
			}
		})
	}
}

// TestCloseExtensions tests that closing reverts the store unless it was
// opened to persist.
func TestCloseExtensions(t *testing.T) {
	cases := map[string]struct {
		persist bool
		want    string
	}{
		"Revert":  {false, "-- kept\n"},
		"Persist": {true, "-- kept\n#INCLUDE foo as foo\n\n"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			in := testutils.NewTestInterp()
			store := alvin.NewMemStore("-- kept\n")
			if err := in.OpenExtensions(store, c.persist); err != nil {
				t.Fatal(err)
			}
			if err := in.Register("foo", count); err != nil {
				t.Fatal(err)
			}
			if err := in.CloseExtensions(); err != nil {
				t.Fatal(err)
			}
			if got := store.String(); got != c.want {
				t.Errorf("wrong store after close: want %q, got %q", c.want, got)
			}
			// Closing again has no effect.
			store.Save([]byte("changed"))
			if err := in.CloseExtensions(); err != nil {
				t.Fatal(err)
			}
			if got := store.String(); got != "changed" {
				t.Errorf("second close modified the store: %q", got)
			}
		})
	}
}

// TestFileStore tests extension storage in files.
func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extensions.txt")
	store := alvin.FileStore{Path: path}
	b, err := store.Load()
	if err != nil {
		t.Fatalf("loading missing store: %v", err)
	}
	if len(b) != 0 {
		t.Errorf("missing store not empty: %q", b)
	}
	const content = "-- mine\n#INCLUDE twice as dbl\n(lambda (x) (* 2 x))\n\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	in := testutils.NewTestInterp()
	if err := in.OpenExtensions(store, false); err != nil {
		t.Fatal(err)
	}
	if err := in.Register("foo", count); err != nil {
		t.Fatal(err)
	}
	b, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "-- mine\n#INCLUDE foo as foo\n\n#INCLUDE twice as dbl\n(lambda (x) (* 2 x))\n\n"
	if string(b) != want {
		t.Errorf("wrong file content: want %q, got %q", want, b)
	}
	if r, err := in.DoString(`(dbl 21)`); err != nil || r != alvin.Int(42) {
		t.Errorf("wrong result from stored extension: %v %v", r, err)
	}
	if err := in.CloseExtensions(); err != nil {
		t.Fatal(err)
	}
	b, err = os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != content {
		t.Errorf("file not reverted: want %q, got %q", content, b)
	}
}
