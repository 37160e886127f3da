// Package loop provides the loop host extension. It is available to
// extension definitions as
//
//	#INCLUDE loop as loop
//
// and then counts a variable through a range, evaluating a body each time:
//
//	(loop for i in range 0 10 2 (show i))
//
// The step may be omitted, in which case it is 1.
package loop

import (
	"github.com/zephyrtronium/alvin"
	"github.com/zephyrtronium/alvin/internal"
)

func init() {
	internal.Register(initLoop)
}

func initLoop(in *alvin.Interp) {
	in.RegisterHost("loop", loop)
}

// loop receives its operands unevaluated.
func loop(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("loop", args, 7, 8); err != nil {
		return nil, err
	}
	for i, w := range [...]alvin.Symbol{0: "for", 2: "in", 3: "range"} {
		if w == "" {
			continue
		}
		if s, ok := args[i].(alvin.Symbol); !ok || s != w {
			return nil, &alvin.TypeError{Op: "loop", Msg: "expected " + string(w) + ", got " + alvin.Print(args[i])}
		}
	}
	name, ok := args[1].(alvin.Symbol)
	if !ok || in.Keywords.IsKeyword(name) {
		return nil, &alvin.TypeError{Op: "loop", Msg: "loop variable must be a name, not " + alvin.Print(args[1])}
	}
	bounds, err := ints(in, args[4:len(args)-1])
	if err != nil {
		return nil, err
	}
	start, stop, step := bounds[0], bounds[1], alvin.Int(1)
	if len(bounds) == 3 {
		step = bounds[2]
	}
	if step == 0 {
		return nil, &alvin.ArithmeticError{Op: "loop", Msg: "step must not be zero"}
	}
	body := args[len(args)-1]
	return in.RunLocal(func() (alvin.Value, error) {
		var r alvin.Value
		for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
			in.Env.Bind(name, i, 0)
			var err error
			if r, err = in.Evaluate(body); err != nil {
				return nil, err
			}
		}
		return r, nil
	})
}

// ints evaluates each expression, requiring integer results.
func ints(in *alvin.Interp, exprs alvin.List) ([]alvin.Int, error) {
	r := make([]alvin.Int, len(exprs))
	for i, x := range exprs {
		v, err := in.Evaluate(x)
		if err != nil {
			return nil, err
		}
		if r[i], err = internal.IntArg("loop", alvin.List{v}, 0); err != nil {
			return nil, err
		}
	}
	return r, nil
}
