// Package testutils provides utilities for testing Alvin code in Go.
package testutils

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/zephyrtronium/alvin"
)

// testInterp is the interpreter used for all tests.
var testInterp *alvin.Interp

var testInterpInit sync.Once

// TestingInterp returns an interpreter for testing Alvin. The interpreter is
// shared by all tests that use this package, so bindings made by one test are
// visible to later ones.
func TestingInterp() *alvin.Interp {
	testInterpInit.Do(ResetTestingInterp)
	return testInterp
}

// ResetTestingInterp reinitializes the interpreter returned by TestingInterp.
// It is not safe to call this in parallel tests.
func ResetTestingInterp() {
	testInterp = NewTestInterp()
}

// NewTestInterp creates an isolated interpreter with no standard input and
// output discarded.
func NewTestInterp(opts ...alvin.Option) *alvin.Interp {
	o := append([]alvin.Option{alvin.WithStdio(strings.NewReader(""), io.Discard)}, opts...)
	return alvin.NewInterp(o...)
}

// A SourceTestCase is a test case containing Alvin source code and a
// predicate to check the result.
type SourceTestCase struct {
	// Source is the Alvin source code to execute.
	Source string
	// Pass is a predicate taking the result of executing Source. If Pass
	// returns false, then the test fails.
	Pass func(result alvin.Value, err error) bool
}

// TestFunc returns a test function for the test case. This uses TestingInterp
// to run the code.
func (c SourceTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		in := TestingInterp()
		r, err := in.DoString(c.Source)
		if !c.Pass(r, err) {
			if err != nil {
				t.Errorf("%q produced wrong result; an error occurred: %s: %v", c.Source, alvin.ErrorName(err), err)
			} else {
				t.Errorf("%q produced wrong result; got %s (%T)", c.Source, alvin.Print(r), r)
			}
		}
	}
}

// PassEqual returns a Pass function for a SourceTestCase that predicates on
// equality as the == keyword sees it. If there is an error, then the
// predicate returns false.
func PassEqual(want alvin.Value) func(alvin.Value, error) bool {
	return func(result alvin.Value, err error) bool {
		if err != nil {
			return false
		}
		return alvin.Equal(want, result)
	}
}

// PassPrint returns a Pass function for a SourceTestCase that predicates on
// the printed form of the result. If there is an error, then the predicate
// returns false.
func PassPrint(want string) func(alvin.Value, error) bool {
	return func(result alvin.Value, err error) bool {
		if err != nil {
			return false
		}
		return alvin.Print(result) == want
	}
}

// PassError returns a Pass function for a SourceTestCase that returns true iff
// the error is of the same type as target, which must be a pointer to an error
// type, e.g. new(*alvin.UndefinedVariable).
func PassError(target any) func(alvin.Value, error) bool {
	return func(result alvin.Value, err error) bool {
		return err != nil && errors.As(err, target)
	}
}

// PassFailure returns a Pass function for a SourceTestCase that returns true
// iff evaluation failed.
func PassFailure() func(alvin.Value, error) bool {
	return func(result alvin.Value, err error) bool {
		return err != nil
	}
}

// PassNil returns a Pass function for a SourceTestCase that returns true iff
// the result is None and there is no error.
func PassNil() func(alvin.Value, error) bool {
	return func(result alvin.Value, err error) bool {
		return err == nil && result == nil
	}
}
