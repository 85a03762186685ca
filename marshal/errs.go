package marshal

import (
	"errors"

	"github.com/signadot/ufoto/model"
)

var (
	ErrMissingAttr = errors.New("missing attribute")
	ErrNotParticle = errors.New("not a particle")
	// ErrNotCollection is returned when a collection attribute is not a
	// sequence of entities.
	ErrNotCollection = model.ErrNotCollection
)
