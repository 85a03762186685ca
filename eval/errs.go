package eval

import (
	"errors"
	"fmt"

	"github.com/signadot/ufoto/token"
)

var ErrEval = errors.New("evaluation error")

// Error is an evaluation failure escaping a module. It matches both
// ErrEval and the underlying cause with errors.Is and errors.As.
type Error struct {
	Pos  token.Pos
	File string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrEval, e.Pos.String(), e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrEval, e.Err}
}

// Exception is a Python level exception. try statements catch it by
// class, following the builtin exception hierarchy.
type Exception struct {
	Class string
	Msg   string
	Pos   *token.Pos
	// Err is the cause, for exceptions raised from Go errors such as
	// syntax errors in imported files.
	Err error
}

func (e *Exception) Error() string {
	if e.Msg == "" {
		return e.Class
	}
	return e.Class + ": " + e.Msg
}

func (e *Exception) Unwrap() error {
	return e.Err
}

var exceptionBases = map[string]string{
	"Exception":           "BaseException",
	"ArithmeticError":     "Exception",
	"AssertionError":      "Exception",
	"AttributeError":      "Exception",
	"ImportError":         "Exception",
	"LookupError":         "Exception",
	"NameError":           "Exception",
	"NotImplementedError": "RuntimeError",
	"RecursionError":      "RuntimeError",
	"RuntimeError":        "Exception",
	"SyntaxError":         "Exception",
	"TypeError":           "Exception",
	"ValueError":          "Exception",
	"IndexError":          "LookupError",
	"KeyError":            "LookupError",
	"ModuleNotFoundError": "ImportError",
	"OverflowError":       "ArithmeticError",
	"ZeroDivisionError":   "ArithmeticError",
}

// isSubclass reports whether exception class c is base or derives from it.
func isSubclass(c, base string) bool {
	for c != "" {
		if c == base {
			return true
		}
		c = exceptionBases[c]
	}
	return false
}

func isExceptionClass(name string) bool {
	_, ok := exceptionBases[name]
	return ok || name == "BaseException"
}

func raise(pos *token.Pos, class, format string, args ...any) *Exception {
	return &Exception{Class: class, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// located fills in the position of an exception raised where no position
// was known, such as inside a native function.
func located(err error, pos *token.Pos) error {
	var exc *Exception
	if errors.As(err, &exc) && exc.Pos == nil {
		exc.Pos = pos
	}
	return err
}
