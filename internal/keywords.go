package internal

import (
	"fmt"
	"sort"
)

// Primitive is the Go implementation of a keyword. Applicative keywords
// receive evaluated arguments; irregular keywords, special forms, and
// extensions receive their operands unevaluated.
type Primitive func(in *Interp, args List) (Value, error)

// BooleanOp combines the truth values of its evaluated operands.
type BooleanOp func(args []bool) (bool, error)

// Category is the evaluation rule a keyword follows.
type Category int

const (
	// NotKeyword is the category of symbols that are not keywords.
	NotKeyword Category = iota
	// Regular keywords evaluate all their operands first.
	Regular
	// Irregular keywords control the evaluation of their own operands.
	Irregular
	// Boolean keywords combine the truthiness of evaluated operands.
	Boolean
	// Extension keywords are registered at run time.
	Extension
	// Accessor keywords are the car/cdr family.
	Accessor
	// Special keywords are the special forms.
	Special
)

func (c Category) String() string {
	switch c {
	case NotKeyword:
		return "none"
	case Regular:
		return "regular"
	case Irregular:
		return "irregular"
	case Boolean:
		return "boolean"
	case Extension:
		return "extension"
	case Accessor:
		return "accessor"
	case Special:
		return "special"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// isAccessor reports whether s is car, cdr, or one of their compositions.
func isAccessor(s Symbol) bool {
	if len(s) < 3 || s[0] != 'c' || s[len(s)-1] != 'r' {
		return false
	}
	for i := 1; i < len(s)-1; i++ {
		if s[i] != 'a' && s[i] != 'd' {
			return false
		}
	}
	return true
}

// Keywords holds an interpreter's keyword tables. Names are unique across
// tables.
type Keywords struct {
	Regular    map[Symbol]Primitive
	Irregular  map[Symbol]Primitive
	Boolean    map[Symbol]BooleanOp
	Extensions map[Symbol]Primitive
	Special    map[Symbol]Primitive
}

// Classify returns the category of a symbol. Tables are checked in the order
// regular, irregular, boolean, extension, accessor, special.
func (k *Keywords) Classify(s Symbol) Category {
	if _, ok := k.Regular[s]; ok {
		return Regular
	}
	if _, ok := k.Irregular[s]; ok {
		return Irregular
	}
	if _, ok := k.Boolean[s]; ok {
		return Boolean
	}
	if _, ok := k.Extensions[s]; ok {
		return Extension
	}
	if isAccessor(s) {
		return Accessor
	}
	if _, ok := k.Special[s]; ok {
		return Special
	}
	return NotKeyword
}

// IsKeyword reports whether s is any kind of keyword.
func (k *Keywords) IsKeyword(s Symbol) bool {
	return k.Classify(s) != NotKeyword
}

// Names returns every keyword name by category, sorted. The accessor
// category lists car, cdr, and the pattern for their compositions.
func (k *Keywords) Names() map[Category][]Symbol {
	r := map[Category][]Symbol{
		Regular:   sortedKeys(k.Regular),
		Irregular: sortedKeys(k.Irregular),
		Extension: sortedKeys(k.Extensions),
		Special:   sortedKeys(k.Special),
		Accessor:  {"car", "cdr", "c[ad]+r"},
		Boolean:   make([]Symbol, 0, len(k.Boolean)),
	}
	for s := range k.Boolean {
		r[Boolean] = append(r[Boolean], s)
	}
	sortSymbols(r[Boolean])
	return r
}

func sortedKeys(m map[Symbol]Primitive) []Symbol {
	r := make([]Symbol, 0, len(m))
	for s := range m {
		r = append(r, s)
	}
	sortSymbols(r)
	return r
}

func sortSymbols(s []Symbol) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}

// initKeywords creates empty keyword tables. The init methods for each
// category fill them.
func (in *Interp) initKeywords() {
	in.Keywords = &Keywords{
		Regular:    make(map[Symbol]Primitive, 32),
		Irregular:  make(map[Symbol]Primitive, 20),
		Boolean:    make(map[Symbol]BooleanOp, 6),
		Extensions: make(map[Symbol]Primitive),
		Special:    make(map[Symbol]Primitive, 8),
	}
}
