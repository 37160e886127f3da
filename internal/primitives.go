package internal

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// initRegular installs the applicative keywords.
func (in *Interp) initRegular() {
	prims := map[Symbol]Primitive{
		"+":       primAdd,
		"-":       primSub,
		"*":       primMul,
		"/":       primDiv,
		"//":      primFloorDiv,
		"%":       primMod,
		"**":      primPow,
		"++":      primInc,
		">":       comparison(">", func(c int) bool { return c > 0 }),
		"<":       comparison("<", func(c int) bool { return c < 0 }),
		">=":      comparison(">=", func(c int) bool { return c >= 0 }),
		"<=":      comparison("<=", func(c int) bool { return c <= 0 }),
		"eq":      primEq,
		"==":      primEq,
		"!=":      primNotEq,
		"len":     primLen,
		"sort":    primSort,
		"show":    primShow,
		"append":  primAppend,
		"elem":    primElem,
		"ref":     primRef,
		"setref":  primSetRef,
		"null?":   primIsNull,
		"atom?":   primIsAtom,
		"number?": primIsNumber,
		"bool?":   primIsBool,
		"cons":    primCons,
		"list":    primList,
		"usrin":   primUsrin,
	}
	for k, v := range prims {
		in.Keywords.Regular[k] = v
	}
}

// concat joins two lists into a new one.
func concat(x, y List) List {
	r := make(List, 0, len(x)+len(y))
	r = append(r, x...)
	return append(r, y...)
}

// listArg returns v as a list.
func listArg(op Symbol, v Value) (List, error) {
	if l, ok := Datum(v).(List); ok {
		return l, nil
	}
	return nil, typeErr(op, "list", v)
}

// primLen is the len keyword: the length of a list or the number of
// characters in a text.
func primLen(in *Interp, args List) (Value, error) {
	if err := arity("len", len(args), 1); err != nil {
		return nil, err
	}
	switch x := Datum(args[0]).(type) {
	case List:
		return Int(len(x)), nil
	case Symbol:
		return Int(utf8.RuneCountInString(string(x))), nil
	}
	return nil, typeErr("len", "list or text", args[0])
}

// primSort is the sort keyword: a sorted copy of a list of numbers or a list
// of texts.
func primSort(in *Interp, args List) (Value, error) {
	if err := arity("sort", len(args), 1); err != nil {
		return nil, err
	}
	l, err := listArg("sort", args[0])
	if err != nil {
		return nil, err
	}
	r := make(List, len(l))
	copy(r, l)
	var cerr error
	sort.SliceStable(r, func(i, j int) bool {
		c, err := compare("sort", r[i], r[j])
		if err != nil && cerr == nil {
			cerr = err
		}
		return c < 0
	})
	if cerr != nil {
		return nil, cerr
	}
	return r, nil
}

// primShow is the show keyword: write each argument's printed form.
func primShow(in *Interp, args List) (Value, error) {
	parts := make([]string, len(args))
	for i, v := range args {
		if v == nil {
			parts[i] = "None"
		} else {
			parts[i] = Print(v)
		}
	}
	if _, err := fmt.Fprintln(in.Stdout, strings.Join(parts, " ")); err != nil {
		return nil, fmt.Errorf("show: %w", err)
	}
	return nil, nil
}

// primAppend is the append keyword: concatenate two lists or two texts.
func primAppend(in *Interp, args List) (Value, error) {
	if err := arity("append", len(args), 2); err != nil {
		return nil, err
	}
	if s, ok := TextOf(args[0]); ok {
		if t, ok := TextOf(args[1]); ok {
			return Text(s + t), nil
		}
	}
	x, err := listArg("append", args[0])
	if err != nil {
		return nil, err
	}
	y, err := listArg("append", args[1])
	if err != nil {
		return nil, err
	}
	return concat(x, y), nil
}

// primElem is the elem keyword: list membership or substring test.
func primElem(in *Interp, args List) (Value, error) {
	if err := arity("elem", len(args), 2); err != nil {
		return nil, err
	}
	switch y := Datum(args[1]).(type) {
	case List:
		for _, v := range y {
			if Equal(args[0], v) {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	case Symbol:
		s, ok := TextOf(args[0])
		if !ok {
			return nil, typeErr("elem", "text", args[0])
		}
		return Bool(strings.Contains(string(y), s)), nil
	}
	return nil, typeErr("elem", "list or text", args[1])
}

// index converts a possibly negative index into a list of length n.
func index(op Symbol, v Value, n int) (int, error) {
	i, ok := Datum(v).(Int)
	if !ok {
		return 0, typeErr(op, "integer index", v)
	}
	k := int(i)
	if k < 0 {
		k += n
	}
	if k < 0 || k >= n {
		return 0, &TypeError{Op: op, Msg: fmt.Sprintf("index %d out of range for length %d", i, n)}
	}
	return k, nil
}

// primRef is the ref keyword: list indexing. Negative indices count from the
// end.
func primRef(in *Interp, args List) (Value, error) {
	if err := arity("ref", len(args), 2); err != nil {
		return nil, err
	}
	l, err := listArg("ref", args[0])
	if err != nil {
		return nil, err
	}
	k, err := index("ref", args[1], len(l))
	if err != nil {
		return nil, err
	}
	return l[k], nil
}

// primSetRef is the setref keyword: replace a list element in place.
func primSetRef(in *Interp, args List) (Value, error) {
	if err := arity("setref", len(args), 3); err != nil {
		return nil, err
	}
	l, err := listArg("setref", args[0])
	if err != nil {
		return nil, err
	}
	k, err := index("setref", args[1], len(l))
	if err != nil {
		return nil, err
	}
	l[k] = args[2]
	return nil, nil
}

func primIsNull(in *Interp, args List) (Value, error) {
	if err := arity("null?", len(args), 1); err != nil {
		return nil, err
	}
	l, ok := Datum(args[0]).(List)
	return Bool(ok && len(l) == 0), nil
}

func primIsAtom(in *Interp, args List) (Value, error) {
	if err := arity("atom?", len(args), 1); err != nil {
		return nil, err
	}
	_, ok := Datum(args[0]).(List)
	return Bool(!ok), nil
}

func primIsNumber(in *Interp, args List) (Value, error) {
	if err := arity("number?", len(args), 1); err != nil {
		return nil, err
	}
	_, _, ok := num(args[0])
	return Bool(ok), nil
}

func primIsBool(in *Interp, args List) (Value, error) {
	if err := arity("bool?", len(args), 1); err != nil {
		return nil, err
	}
	_, ok := Datum(args[0]).(Bool)
	return Bool(ok), nil
}

// primCons is the cons keyword: a new list with a head prepended.
func primCons(in *Interp, args List) (Value, error) {
	if err := arity("cons", len(args), 2); err != nil {
		return nil, err
	}
	l, err := listArg("cons", args[1])
	if err != nil {
		return nil, err
	}
	return concat(List{args[0]}, l), nil
}

func primList(in *Interp, args List) (Value, error) {
	r := make(List, len(args))
	copy(r, args)
	return r, nil
}

// primUsrin is the usrin keyword: prompt on the interpreter's output and read
// a line of input. Numbers and booleans in the input are converted.
func primUsrin(in *Interp, args List) (Value, error) {
	if err := arityRange("usrin", len(args), 0, 1); err != nil {
		return nil, err
	}
	if len(args) == 1 {
		fmt.Fprint(in.Stdout, Print(args[0])+" ")
	}
	line, err := in.Stdin.ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("usrin: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	v := Atom(line)
	if s, ok := v.(Symbol); ok {
		return Text(string(s)), nil
	}
	return v, nil
}
