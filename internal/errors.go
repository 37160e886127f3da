package internal

import (
	"fmt"
	"strings"
)

// SyntaxKind classifies a SyntaxError.
type SyntaxKind int

const (
	// UnmatchedParenthesis means the source has a close paren with no open
	// paren or ends with open parens still unclosed.
	UnmatchedParenthesis SyntaxKind = iota
	// InvalidExpressionStructure means two keywords appear side by side.
	InvalidExpressionStructure
	// DanglingQuote means a quote mark has nothing after it to quote.
	DanglingQuote
)

func (k SyntaxKind) String() string {
	switch k {
	case UnmatchedParenthesis:
		return "UnmatchedParenthesis"
	case InvalidExpressionStructure:
		return "InvalidExpressionStructure"
	case DanglingQuote:
		return "DanglingQuote"
	}
	return fmt.Sprintf("SyntaxKind(%d)", int(k))
}

// SyntaxError is an error reading source text.
type SyntaxError struct {
	Kind SyntaxKind
	// Near is the token at or after which the error was detected, if any.
	Near string
	Msg  string
}

func (err *SyntaxError) Error() string {
	if err.Near != "" {
		return fmt.Sprintf("%v: %s near %q", err.Kind, err.Msg, err.Near)
	}
	return fmt.Sprintf("%v: %s", err.Kind, err.Msg)
}

// UndefinedVariable is an error looking up a name bound in no scope.
type UndefinedVariable struct {
	Name Symbol
}

func (err *UndefinedVariable) Error() string {
	return fmt.Sprintf("undefined variable %s", err.Name)
}

// UpdateBeforeDefinition is an error updating a name bound in no scope.
type UpdateBeforeDefinition struct {
	Name Symbol
}

func (err *UpdateBeforeDefinition) Error() string {
	return fmt.Sprintf("cannot update %s before it is defined", err.Name)
}

// DeleteBeforeDefinition is an error deleting a name bound in no scope.
type DeleteBeforeDefinition struct {
	Name Symbol
}

func (err *DeleteBeforeDefinition) Error() string {
	return fmt.Sprintf("cannot delete %s before it is defined", err.Name)
}

// ArityError is an error calling something with the wrong number of
// arguments.
type ArityError struct {
	Name Symbol
	// Want is a description of the accepted argument counts.
	Want string
	Have int
}

func (err *ArityError) Error() string {
	return fmt.Sprintf("%s takes %s argument(s), got %d", err.Name, err.Want, err.Have)
}

// arity returns an ArityError if have is not n.
func arity(name Symbol, have, n int) error {
	if have != n {
		return &ArityError{Name: name, Want: fmt.Sprint(n), Have: have}
	}
	return nil
}

// arityRange returns an ArityError if have is outside [lo, hi]. A negative hi
// means no upper bound.
func arityRange(name Symbol, have, lo, hi int) error {
	if have >= lo && (hi < 0 || have <= hi) {
		return nil
	}
	var want string
	switch {
	case hi < 0:
		want = fmt.Sprintf("at least %d", lo)
	case lo == hi:
		want = fmt.Sprint(lo)
	default:
		want = fmt.Sprintf("%d to %d", lo, hi)
	}
	return &ArityError{Name: name, Want: want, Have: have}
}

// AccessorError is an error applying a car/cdr-family accessor to an empty
// list or a non-list.
type AccessorError struct {
	Accessor Symbol
	Target   Value
}

func (err *AccessorError) Error() string {
	if l, ok := err.Target.(List); ok && len(l) == 0 {
		return fmt.Sprintf("%s: empty list", err.Accessor)
	}
	return fmt.Sprintf("%s: %s is not a list", err.Accessor, KindOf(err.Target))
}

// RecursionLimitExceeded is an error evaluating expressions nested deeper than
// the interpreter's configured limit.
type RecursionLimitExceeded struct {
	Limit int
}

func (err *RecursionLimitExceeded) Error() string {
	return fmt.Sprintf("recursion limit of %d exceeded", err.Limit)
}

// ClosureError is an error running a function, template, or instance whose
// closure environment is no longer in the registry.
type ClosureError struct {
	ID ClosureID
}

func (err *ClosureError) Error() string {
	return fmt.Sprintf("closure %d is no longer registered", err.ID)
}

// ExtensionWithdrawError is an error withdrawing an extension that is not
// registered.
type ExtensionWithdrawError struct {
	Name Symbol
}

func (err *ExtensionWithdrawError) Error() string {
	return fmt.Sprintf("no extension named %s to withdraw", err.Name)
}

// ExtensionError is an error registering or loading an extension.
type ExtensionError struct {
	Name Symbol
	Msg  string
}

func (err *ExtensionError) Error() string {
	if err.Name == "" {
		return "extension: " + err.Msg
	}
	return fmt.Sprintf("extension %s: %s", err.Name, err.Msg)
}

// ArithmeticError is an error such as division by zero.
type ArithmeticError struct {
	Op  Symbol
	Msg string
}

func (err *ArithmeticError) Error() string {
	return fmt.Sprintf("%s: %s", err.Op, err.Msg)
}

// TypeError is an error applying an operation to a value of the wrong kind.
type TypeError struct {
	Op  Symbol
	Msg string
}

func (err *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", err.Op, err.Msg)
}

// typeErr creates a TypeError for an operand of an unexpected kind.
func typeErr(op Symbol, want string, have ...Value) error {
	kinds := make([]string, len(have))
	for i, v := range have {
		kinds[i] = KindOf(v).String()
	}
	return &TypeError{Op: op, Msg: fmt.Sprintf("expected %s, got %s", want, strings.Join(kinds, ", "))}
}

// CondError is an error evaluating a cond with no matching clause.
type CondError struct{}

func (err *CondError) Error() string {
	return "cond: no clause matched"
}

// ErrorName returns the short type name of an interpreter error, as the REPL
// prints it.
func ErrorName(err error) string {
	switch err.(type) {
	case *SyntaxError:
		return "SyntaxError"
	case *UndefinedVariable:
		return "UndefinedVariable"
	case *UpdateBeforeDefinition:
		return "UpdateBeforeDefinition"
	case *DeleteBeforeDefinition:
		return "DeleteBeforeDefinition"
	case *ArityError:
		return "ArityError"
	case *AccessorError:
		return "AccessorError"
	case *RecursionLimitExceeded:
		return "RecursionLimitExceeded"
	case *ExtensionWithdrawError:
		return "ExtensionWithdrawError"
	case *ExtensionError:
		return "ExtensionError"
	case *ArithmeticError:
		return "ArithmeticError"
	case *TypeError:
		return "TypeError"
	case *CondError:
		return "CondError"
	case *ImportError:
		return "ImportError"
	case *ClosureError:
		return "ClosureError"
	default:
		return "Error"
	}
}
