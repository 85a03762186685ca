package encode

import (
	"errors"
	"fmt"

	"github.com/signadot/ufoto/ir"
)

var ErrUnsupported = errors.New("unsupported value")

// EncodeError reports a node a format cannot represent.
type EncodeError struct {
	Format string
	Path   string
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s: %s: %s at %s", e.Format, ErrUnsupported, e.Reason, e.Path)
}

func (e *EncodeError) Unwrap() error {
	return ErrUnsupported
}

func unsupported(name string, n *ir.Node, reason string, args ...any) error {
	return &EncodeError{Format: name, Path: n.Path(), Reason: fmt.Sprintf(reason, args...)}
}

func opaque(name string, n *ir.Node) error {
	return unsupported(name, n, "value %s has no %s representation", n.String, name)
}

func tupleKey(name string, obj, key *ir.Node) error {
	return unsupported(name, obj, "tuple key %s", ir.KeyString(key))
}
