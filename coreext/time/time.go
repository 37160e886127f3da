// Package time provides the time module, imported in Alvin with
// (import time).
package time

import (
	"time"

	"github.com/zephyrtronium/alvin"
	"github.com/zephyrtronium/alvin/internal"

	"gitlab.com/variadico/lctime"
)

// DefaultFormat is the strftime format used by time.format when none is
// given.
const DefaultFormat = "%Y-%m-%d %H:%M:%S %Z"

func init() {
	internal.Register(initTime)
}

func initTime(in *alvin.Interp) {
	in.ProvideModule(&alvin.Module{
		Name: "time",
		Members: map[alvin.Symbol]alvin.Value{
			"now":    alvin.NewBuiltin("now", now),
			"clock":  alvin.NewBuiltin("clock", clock),
			"sleep":  alvin.NewBuiltin("sleep", sleep),
			"format": alvin.NewBuiltin("format", format),
		},
	})
}

// now is a time function.
//
// now returns the current Unix time in seconds.
func now(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("time.now", args, 0, 0); err != nil {
		return nil, err
	}
	t := time.Now()
	return alvin.Float(float64(t.UnixNano()) / 1e9), nil
}

// clock is a time function.
//
// clock returns the number of seconds since the interpreter was created.
func clock(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("time.clock", args, 0, 0); err != nil {
		return nil, err
	}
	return alvin.Float(time.Since(in.StartTime).Seconds()), nil
}

// sleep is a time function.
//
// sleep pauses for the given number of seconds.
func sleep(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("time.sleep", args, 1, 1); err != nil {
		return nil, err
	}
	s, err := internal.NumberArg("time.sleep", args, 0)
	if err != nil {
		return nil, err
	}
	if s < 0 {
		return nil, &alvin.ArithmeticError{Op: "time.sleep", Msg: "sleep length must be non-negative"}
	}
	time.Sleep(time.Duration(s * float64(time.Second)))
	return nil, nil
}

// format is a time function.
//
// format formats a time using strftime directives. With no arguments, it
// formats the current time with DefaultFormat. The first argument, if given,
// is the format. The second is a Unix time in seconds to format instead of
// the current time.
func format(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("time.format", args, 0, 2); err != nil {
		return nil, err
	}
	f := DefaultFormat
	if len(args) > 0 {
		s, err := internal.TextArg("time.format", args, 0)
		if err != nil {
			return nil, err
		}
		f = s
	}
	t := time.Now()
	if len(args) > 1 {
		sec, err := internal.NumberArg("time.format", args, 1)
		if err != nil {
			return nil, err
		}
		t = time.Unix(0, int64(sec*1e9))
	}
	return alvin.Text(lctime.Strftime(f, t)), nil
}
