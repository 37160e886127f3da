// Command alvinfn lists the functions in Go packages that have the signature
// of an Alvin host function, formatted as entries of a keyword table.
//
// Usage:
//
//	alvinfn [-match regexp] [-ignore regexp] [-alvin path] [packages]
//
// With no packages, alvinfn searches the package that defines Primitive.
package main

import (
	"flag"
	"fmt"
	"go/types"
	"os"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

func main() {
	var match, ignore string
	var alvin string
	flag.StringVar(&match, "match", "^prim", "include only functions matching this regular expression")
	flag.StringVar(&ignore, "ignore", "$^", "exclude functions matching this regular expression")
	flag.StringVar(&alvin, "alvin", "github.com/zephyrtronium/alvin/internal", "import path of the package defining Primitive")
	flag.Parse()
	mre, err := regexp.Compile(match)
	if err != nil {
		fail("error compiling match:", err)
	}
	ire, err := regexp.Compile(ignore)
	if err != nil {
		fail("error compiling ignore:", err)
	}

	config := packages.Config{Mode: packages.NeedName | packages.NeedTypes | packages.NeedImports}
	pkgs, err := packages.Load(&config, append([]string{alvin}, flag.Args()...)...)
	if err != nil {
		fail("error loading packages:", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		os.Exit(1)
	}
	prim, search := primitive(pkgs)
	var results []string
	for _, pkg := range search {
		results = append(results, find(pkg.Types.Scope(), prim, mre, ire)...)
	}
	sort.Strings(results)
	for _, name := range results {
		fmt.Printf("\t%q: %s,\n", keyword(name, mre), name)
	}
}

func fail(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

// primitive finds the Primitive type in the first package. It returns the
// packages to search, which are the rest or the first alone.
func primitive(pkgs []*packages.Package) (types.Type, []*packages.Package) {
	pkg := pkgs[0].Types
	r := pkg.Scope().Lookup("Primitive")
	if r == nil {
		fail(pkg.Name(), "has no definition of Primitive")
	}
	t, ok := r.(*types.TypeName)
	if !ok {
		fail(pkg.Name(), "has incorrect definition of Primitive:", r)
	}
	if len(pkgs) == 1 {
		return t.Type().Underlying(), pkgs
	}
	return t.Type().Underlying(), pkgs[1:]
}

// find lists the functions in scope assignable to fn whose names pass the
// filters.
func find(scope *types.Scope, fn types.Type, mre, ire *regexp.Regexp) []string {
	var r []string
	for _, name := range scope.Names() {
		if !mre.MatchString(name) || ire.MatchString(name) {
			continue
		}
		obj, ok := scope.Lookup(name).(*types.Func)
		if ok && types.AssignableTo(obj.Type(), fn) {
			r = append(r, name)
		}
	}
	return r
}

// keyword derives a keyword name from a function name by removing a leading
// match and lowering the first letter.
func keyword(name string, mre *regexp.Regexp) string {
	if k := mre.FindStringIndex(name); mre.String() != "." && k != nil && k[0] == 0 {
		name = name[k[1]:]
	}
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
