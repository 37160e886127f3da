// Package sys provides the sys module, imported in Alvin with (import sys).
//
// The module has the members platform, the operating system name; release,
// the operating system release; version, the interpreter version; and args,
// a function returning the program's arguments as a list of text.
package sys

import (
	"runtime"

	"github.com/zephyrtronium/alvin"
	"github.com/zephyrtronium/alvin/internal"
)

func init() {
	internal.Register(initSys)
}

func initSys(in *alvin.Interp) {
	in.ProvideModule(&alvin.Module{
		Name: "sys",
		Members: map[alvin.Symbol]alvin.Value{
			"platform": alvin.Text(runtime.GOOS),
			"release":  alvin.Text(platformRelease()),
			"version":  alvin.Text(alvin.Version),
			"args":     alvin.NewBuiltin("args", args),
			"exit":     alvin.NewBuiltin("exit", exit),
		},
	})
}

// args is a sys function.
//
// args returns the program arguments as a list of text.
func args(in *alvin.Interp, a alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("sys.args", a, 0, 0); err != nil {
		return nil, err
	}
	r := make(alvin.List, len(in.Args))
	for i, s := range in.Args {
		r[i] = alvin.Text(s)
	}
	return r, nil
}

// ExitError is returned by sys.exit to end the program with a status.
type ExitError struct {
	Code int
}

func (err *ExitError) Error() string {
	return "exit requested"
}

// exit is a sys function.
//
// exit stops the running program, with status 0 by default.
func exit(in *alvin.Interp, a alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("sys.exit", a, 0, 1); err != nil {
		return nil, err
	}
	code := 0
	if len(a) > 0 {
		n, err := internal.IntArg("sys.exit", a, 0)
		if err != nil {
			return nil, err
		}
		code = int(n)
	}
	return nil, &ExitError{Code: code}
}
