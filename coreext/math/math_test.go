package math_test

import (
	"testing"

	"github.com/zephyrtronium/alvin"
	_ "github.com/zephyrtronium/alvin/coreext/math" // side effects
	"github.com/zephyrtronium/alvin/testutils"
)

// TestMath tests the math module's functions.
func TestMath(t *testing.T) {
	cases := map[string]testutils.SourceTestCase{
		"Sqrt":       {Source: `(import math) (math.sqrt 16)`, Pass: testutils.PassPrint("4")},
		"SqrtFrac":   {Source: `(import math) (math.sqrt 2.25)`, Pass: testutils.PassPrint("1.5")},
		"SqrtDomain": {Source: `(import math) (math.sqrt -1)`, Pass: testutils.PassError(new(*alvin.ArithmeticError))},
		"Floor":      {Source: `(import math) (math.floor 2.7)`, Pass: testutils.PassPrint("2")},
		"Ceil":       {Source: `(import math) (math.ceil 2.1)`, Pass: testutils.PassPrint("3")},
		"Abs":        {Source: `(import math) (math.abs -3.5)`, Pass: testutils.PassPrint("3.5")},
		"Round":      {Source: `(import math) (math.round 2.5)`, Pass: testutils.PassPrint("3")},
		"Trunc":      {Source: `(import math) (math.trunc -2.5)`, Pass: testutils.PassPrint("-2")},
		"Sin":        {Source: `(import math) (math.sin 0)`, Pass: testutils.PassPrint("0")},
		"Exp":        {Source: `(import math) (math.exp 0)`, Pass: testutils.PassPrint("1")},
		"Log":        {Source: `(import math) (math.log 1)`, Pass: testutils.PassPrint("0.0")},
		"LogBase":    {Source: `(import math) (math.log 8 2)`, Pass: testutils.PassPrint("3.0")},
		"LogDomain":  {Source: `(import math) (math.log 0)`, Pass: testutils.PassError(new(*alvin.ArithmeticError))},
		"Max":        {Source: `(import math) (math.max 3 7.5 5)`, Pass: testutils.PassPrint("7.5")},
		"Min":        {Source: `(import math) (math.min 3 -1 5)`, Pass: testutils.PassPrint("-1")},
		"MaxList":    {Source: `(import math) (math.max '(4 9 2))`, Pass: testutils.PassPrint("9")},
		"Hypot":      {Source: `(import math) (math.hypot 3 4)`, Pass: testutils.PassPrint("5")},
		"Pi":         {Source: `(import math) (> math.pi 3.14)`, Pass: testutils.PassPrint("#t")},
		"Alias":      {Source: `(import math as m) (m.sqrt 9)`, Pass: testutils.PassPrint("3")},
		"Type":       {Source: `(import math) (math.sqrt 'x)`, Pass: testutils.PassError(new(*alvin.TypeError))},
		"Arity":      {Source: `(import math) (math.sqrt 1 2)`, Pass: testutils.PassError(new(*alvin.ArityError))},
		"Empty":      {Source: `(import math) (math.max)`, Pass: testutils.PassError(new(*alvin.ArityError))},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}
