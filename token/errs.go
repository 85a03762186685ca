package token

import (
	"errors"
	"fmt"
)

var (
	ErrBadUTF8      = errors.New("bad utf8")
	ErrUnterminated = errors.New("unterminated")
	ErrBadIndent    = errors.New("inconsistent indentation")
	ErrBadEscape    = errors.New("bad escape")
	ErrNumber       = errors.New("number")
	ErrUnsupported  = errors.New("unsupported")
	ErrUnexpected   = errors.New("unexpected character")
	ErrBalance      = errors.New("unbalanced brackets")
)

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func ExpectedErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("expected %s", what), p)
}
