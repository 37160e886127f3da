package internal

// initBoolean installs the boolean combinators. Each takes the truth values
// of its evaluated operands.
func (in *Interp) initBoolean() {
	ops := map[Symbol]BooleanOp{
		"not":  unary(func(a bool) bool { return !a }),
		"and":  binary(func(a, b bool) bool { return a && b }),
		"or":   binary(func(a, b bool) bool { return a || b }),
		"xor":  binary(func(a, b bool) bool { return a != b }),
		"nor":  binary(func(a, b bool) bool { return !(a || b) }),
		"nand": binary(func(a, b bool) bool { return !(a && b) }),
	}
	for k, v := range ops {
		in.Keywords.Boolean[k] = v
	}
}

// unary and binary fix the arity of a boolean combinator. The evaluator fills
// in the keyword name of any ArityError.

func unary(f func(bool) bool) BooleanOp {
	return func(args []bool) (bool, error) {
		if err := arity("", len(args), 1); err != nil {
			return false, err
		}
		return f(args[0]), nil
	}
}

func binary(f func(a, b bool) bool) BooleanOp {
	return func(args []bool) (bool, error) {
		if err := arity("", len(args), 2); err != nil {
			return false, err
		}
		return f(args[0], args[1]), nil
	}
}
