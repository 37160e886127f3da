// Package coreext imports every core extension for its side effects. A
// program that wants the standard modules and host extensions imports this
// package before creating an interpreter.
package coreext

import (
	// importing for side effects
	_ "github.com/zephyrtronium/alvin/coreext/collector"
	_ "github.com/zephyrtronium/alvin/coreext/loop"
	_ "github.com/zephyrtronium/alvin/coreext/math"
	_ "github.com/zephyrtronium/alvin/coreext/sys"
	_ "github.com/zephyrtronium/alvin/coreext/text"
	_ "github.com/zephyrtronium/alvin/coreext/time"
)
