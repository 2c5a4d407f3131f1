package shapedef

import (
	"strings"

	"github.com/pkg/errors"
)

// NewFromString creates a Model from a string holding a Smithy JSON AST. Very
// useful in tests.
func NewFromString(def string) (*Model, error) {
	m, err := Load(strings.NewReader(def))
	if err != nil {
		return nil, errors.Wrap(err, "cannot create model from definition string")
	}
	return m, nil
}
