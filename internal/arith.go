package internal

import (
	"math"
	"strings"
)

// num returns v as a float and whether it is an integer, or ok = false if v
// is not a number.
func num(v Value) (f float64, isInt, ok bool) {
	switch x := Datum(v).(type) {
	case Int:
		return float64(x), true, true
	case Float:
		return float64(x), false, true
	}
	return 0, false, false
}

// ints returns both values as integers if both are integers.
func ints(a, b Value) (Int, Int, bool) {
	x, ok := Datum(a).(Int)
	if !ok {
		return 0, 0, false
	}
	y, ok := Datum(b).(Int)
	return x, y, ok
}

// floats returns both values as floats if both are numbers.
func floats(a, b Value) (float64, float64, bool) {
	x, _, ok := num(a)
	if !ok {
		return 0, 0, false
	}
	y, _, ok := num(b)
	return x, y, ok
}

func add(a, b Value) (Value, error) {
	if x, y, ok := ints(a, b); ok {
		return x + y, nil
	}
	if x, y, ok := floats(a, b); ok {
		return Float(x + y), nil
	}
	if s, ok := TextOf(a); ok {
		if t, ok := TextOf(b); ok {
			return Text(s + t), nil
		}
	}
	if x, ok := Datum(a).(List); ok {
		if y, ok := Datum(b).(List); ok {
			return concat(x, y), nil
		}
	}
	return nil, typeErr("+", "numbers, texts, or lists", a, b)
}

func sub(a, b Value) (Value, error) {
	if x, y, ok := ints(a, b); ok {
		return x - y, nil
	}
	if x, y, ok := floats(a, b); ok {
		return Float(x - y), nil
	}
	return nil, typeErr("-", "numbers", a, b)
}

func mul(a, b Value) (Value, error) {
	if x, y, ok := ints(a, b); ok {
		return x * y, nil
	}
	if x, y, ok := floats(a, b); ok {
		return Float(x * y), nil
	}
	if s, ok := TextOf(a); ok {
		if n, ok := Datum(b).(Int); ok {
			if n < 0 {
				n = 0
			}
			return Text(strings.Repeat(s, int(n))), nil
		}
	}
	return nil, typeErr("*", "numbers", a, b)
}

// fold applies op across args from left to right.
func fold(name Symbol, op func(a, b Value) (Value, error), args List) (Value, error) {
	if err := arityRange(name, len(args), 1, -1); err != nil {
		return nil, err
	}
	r := args[0]
	if len(args) == 1 {
		if _, _, ok := num(r); !ok {
			return nil, typeErr(name, "number", r)
		}
		return Datum(r), nil
	}
	for _, v := range args[1:] {
		var err error
		r, err = op(r, v)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

func primAdd(in *Interp, args List) (Value, error) {
	return fold("+", add, args)
}

func primMul(in *Interp, args List) (Value, error) {
	return fold("*", mul, args)
}

func primSub(in *Interp, args List) (Value, error) {
	if err := arityRange("-", len(args), 1, 2); err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return sub(Int(0), args[0])
	}
	return sub(args[0], args[1])
}

func primInc(in *Interp, args List) (Value, error) {
	if err := arity("++", len(args), 1); err != nil {
		return nil, err
	}
	return add(args[0], Int(1))
}

func primDiv(in *Interp, args List) (Value, error) {
	if err := arity("/", len(args), 2); err != nil {
		return nil, err
	}
	x, y, ok := floats(args[0], args[1])
	if !ok {
		return nil, typeErr("/", "numbers", args[0], args[1])
	}
	if y == 0 {
		return nil, &ArithmeticError{Op: "/", Msg: "division by zero"}
	}
	return Float(x / y), nil
}

func primFloorDiv(in *Interp, args List) (Value, error) {
	if err := arity("//", len(args), 2); err != nil {
		return nil, err
	}
	if x, y, ok := ints(args[0], args[1]); ok {
		if y == 0 {
			return nil, &ArithmeticError{Op: "//", Msg: "division by zero"}
		}
		q := x / y
		if (x%y != 0) && ((x < 0) != (y < 0)) {
			q--
		}
		return q, nil
	}
	x, y, ok := floats(args[0], args[1])
	if !ok {
		return nil, typeErr("//", "numbers", args[0], args[1])
	}
	if y == 0 {
		return nil, &ArithmeticError{Op: "//", Msg: "division by zero"}
	}
	return Float(math.Floor(x / y)), nil
}

// primMod computes a modulus with the sign of the divisor.
func primMod(in *Interp, args List) (Value, error) {
	if err := arity("%", len(args), 2); err != nil {
		return nil, err
	}
	if x, y, ok := ints(args[0], args[1]); ok {
		if y == 0 {
			return nil, &ArithmeticError{Op: "%", Msg: "modulo by zero"}
		}
		r := x % y
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return r, nil
	}
	x, y, ok := floats(args[0], args[1])
	if !ok {
		return nil, typeErr("%", "numbers", args[0], args[1])
	}
	if y == 0 {
		return nil, &ArithmeticError{Op: "%", Msg: "modulo by zero"}
	}
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return Float(r), nil
}

func primPow(in *Interp, args List) (Value, error) {
	if err := arity("**", len(args), 2); err != nil {
		return nil, err
	}
	if x, y, ok := ints(args[0], args[1]); ok && y >= 0 {
		r := Int(1)
		for ; y > 0; y >>= 1 {
			if y&1 != 0 {
				r *= x
			}
			x *= x
		}
		return r, nil
	}
	x, y, ok := floats(args[0], args[1])
	if !ok {
		return nil, typeErr("**", "numbers", args[0], args[1])
	}
	if x == 0 && y < 0 {
		return nil, &ArithmeticError{Op: "**", Msg: "zero to a negative power"}
	}
	return Float(math.Pow(x, y)), nil
}

// compare orders two numbers or two texts.
func compare(op Symbol, a, b Value) (int, error) {
	if x, y, ok := ints(a, b); ok {
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		}
		return 0, nil
	}
	if x, y, ok := floats(a, b); ok {
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		}
		return 0, nil
	}
	if s, ok := TextOf(a); ok {
		if t, ok := TextOf(b); ok {
			return strings.Compare(s, t), nil
		}
	}
	return 0, typeErr(op, "two numbers or two texts", a, b)
}

// comparison creates an ordering primitive.
func comparison(op Symbol, pred func(int) bool) Primitive {
	return func(in *Interp, args List) (Value, error) {
		if err := arity(op, len(args), 2); err != nil {
			return nil, err
		}
		c, err := compare(op, args[0], args[1])
		if err != nil {
			return nil, err
		}
		return Bool(pred(c)), nil
	}
}

func primEq(in *Interp, args List) (Value, error) {
	if err := arity("eq", len(args), 2); err != nil {
		return nil, err
	}
	return Bool(Equal(args[0], args[1])), nil
}

func primNotEq(in *Interp, args List) (Value, error) {
	if err := arity("!=", len(args), 2); err != nil {
		return nil, err
	}
	return Bool(!Equal(args[0], args[1])), nil
}
