// Package math provides the math module, imported in Alvin with (import math).
package math

import (
	"math"

	"github.com/zephyrtronium/alvin"
	"github.com/zephyrtronium/alvin/internal"
)

func init() {
	internal.Register(initMath)
}

func initMath(in *alvin.Interp) {
	members := map[alvin.Symbol]alvin.Value{
		"pi":  alvin.Float(math.Pi),
		"e":   alvin.Float(math.E),
		"inf": alvin.Float(math.Inf(1)),
	}
	unary := map[alvin.Symbol]func(float64) float64{
		"sqrt":  math.Sqrt,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"abs":   math.Abs,
		"round": math.Round,
		"trunc": math.Trunc,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"exp":   math.Exp,
	}
	for name, f := range unary {
		members[name] = alvin.NewBuiltin(name, wrap(name, f))
	}
	members["log"] = alvin.NewBuiltin("log", logarithm)
	members["max"] = alvin.NewBuiltin("max", extreme("max", 1))
	members["min"] = alvin.NewBuiltin("min", extreme("min", -1))
	members["hypot"] = alvin.NewBuiltin("hypot", hypot)
	in.ProvideModule(&alvin.Module{Name: "math", Members: members})
}

// wrap creates a math function applying f to a single number. Integral
// results are integers.
func wrap(name alvin.Symbol, f func(float64) float64) alvin.Primitive {
	return func(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
		if err := internal.CheckArity(name, args, 1, 1); err != nil {
			return nil, err
		}
		x, err := internal.NumberArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		r := f(x)
		if math.IsNaN(r) {
			return nil, &alvin.ArithmeticError{Op: name, Msg: "math domain error"}
		}
		return internal.Number(r), nil
	}
}

// logarithm is a math function.
//
// log returns the natural logarithm of its first argument, or the logarithm
// in the base given by its second.
func logarithm(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("log", args, 1, 2); err != nil {
		return nil, err
	}
	x, err := internal.NumberArg("log", args, 0)
	if err != nil {
		return nil, err
	}
	if x <= 0 {
		return nil, &alvin.ArithmeticError{Op: "log", Msg: "math domain error"}
	}
	r := math.Log(x)
	if len(args) == 2 {
		b, err := internal.NumberArg("log", args, 1)
		if err != nil {
			return nil, err
		}
		if b <= 0 || b == 1 {
			return nil, &alvin.ArithmeticError{Op: "log", Msg: "math domain error"}
		}
		r /= math.Log(b)
	}
	return alvin.Float(r), nil
}

// extreme creates max or min. sign is 1 to select the greatest argument and
// -1 for the least. The selected argument is returned unchanged.
func extreme(name alvin.Symbol, sign float64) alvin.Primitive {
	return func(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
		if len(args) == 1 {
			if l, ok := alvin.Datum(args[0]).(alvin.List); ok {
				args = l
			}
		}
		if err := internal.CheckArity(name, args, 1, -1); err != nil {
			return nil, err
		}
		best, err := internal.NumberArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		r := args[0]
		for i := 1; i < len(args); i++ {
			x, err := internal.NumberArg(name, args, i)
			if err != nil {
				return nil, err
			}
			if (x-best)*sign > 0 {
				best, r = x, args[i]
			}
		}
		return r, nil
	}
}

// hypot is a math function.
//
// hypot returns the Euclidean norm of its arguments.
func hypot(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	var s float64
	for i := range args {
		x, err := internal.NumberArg("hypot", args, i)
		if err != nil {
			return nil, err
		}
		s = math.Hypot(s, x)
	}
	return internal.Number(s), nil
}
