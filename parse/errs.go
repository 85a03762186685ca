package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/ufoto/token"
)

var ErrParse = errors.New("parse error")

// Error is a parse failure at a position.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at %s", ErrParse, e.Msg, e.Pos.String())
}

func (e *Error) Unwrap() error {
	return ErrParse
}

func errAt(tok *token.Token, format string, args ...any) error {
	return &Error{Pos: *tok.Pos, Msg: fmt.Sprintf(format, args...)}
}
