package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"regexp"
	"slices"
	"testing"
)

const src = `package p

type Interp struct{}
type Value interface{}
type List []Value
type Primitive func(in *Interp, args List) (Value, error)

func primAdd(in *Interp, args List) (Value, error) { return nil, nil }
func primIsNull(in *Interp, args List) (Value, error) { return nil, nil }
func primWrong(args List) (Value, error) { return nil, nil }
func helper(in *Interp, args List) (Value, error) { return nil, nil }
`

// TestFind tests that only functions with the primitive signature and a
// matching name are found.
func TestFind(t *testing.T) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, 0)
	if err != nil {
		t.Fatal(err)
	}
	var conf types.Config
	pkg, err := conf.Check("p", fset, []*ast.File{f}, nil)
	if err != nil {
		t.Fatal(err)
	}
	prim := pkg.Scope().Lookup("Primitive").Type().Underlying()
	got := find(pkg.Scope(), prim, regexp.MustCompile("^prim"), regexp.MustCompile("$^"))
	want := []string{"primAdd", "primIsNull"}
	if !slices.Equal(got, want) {
		t.Errorf("wrong functions: want %v, got %v", want, got)
	}
	got = find(pkg.Scope(), prim, regexp.MustCompile("."), regexp.MustCompile("^prim"))
	if !slices.Equal(got, []string{"helper"}) {
		t.Errorf("ignore not applied: got %v", got)
	}
}

// TestKeyword tests deriving keyword names from function names.
func TestKeyword(t *testing.T) {
	cases := map[string]struct {
		name, match, want string
	}{
		"Prefix":  {"primAdd", "^prim", "add"},
		"NoMatch": {"helper", "^prim", "helper"},
		"Dot":     {"Helper", ".", "helper"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := keyword(c.name, regexp.MustCompile(c.match)); got != c.want {
				t.Errorf("wrong keyword: want %q, got %q", c.want, got)
			}
		})
	}
}
