package internal

// Argument helpers for host functions. Builtins receive evaluated arguments;
// these check their count and kinds and produce the interpreter's usual
// errors.

// CheckArity returns an ArityError unless lo <= len(args) <= hi. A negative hi
// means no upper bound.
func CheckArity(name Symbol, args List, lo, hi int) error {
	if lo == hi {
		return arity(name, len(args), lo)
	}
	return arityRange(name, len(args), lo, hi)
}

// NumberArg returns args[i] as a float64.
func NumberArg(name Symbol, args List, i int) (float64, error) {
	f, _, ok := num(args[i])
	if !ok {
		return 0, typeErr(name, "number", args[i])
	}
	return f, nil
}

// IntArg returns args[i] as an integer.
func IntArg(name Symbol, args List, i int) (Int, error) {
	n, ok := Datum(args[i]).(Int)
	if !ok {
		return 0, typeErr(name, "integer", args[i])
	}
	return n, nil
}

// TextArg returns the text of args[i].
func TextArg(name Symbol, args List, i int) (string, error) {
	s, ok := TextOf(args[i])
	if !ok {
		return "", typeErr(name, "text", args[i])
	}
	return s, nil
}

// Number returns f as an Int if it is integral and fits, otherwise as a Float.
func Number(f float64) Value {
	if f >= -1<<63 && f < 1<<63 && f == float64(int64(f)) {
		return Int(f)
	}
	return Float(f)
}
