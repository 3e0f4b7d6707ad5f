// Package format renders extraction results for the command line.
package format

import (
	"encoding"
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/binding"
)

// Result holds the bindings extracted from one file.
type Result struct {
	Path     string
	Kind     binding.Kind
	Bindings []binding.TokenNameBinding
}

type Encoder interface {
	encoding.TextMarshaler
	Encode(r Result) error
}

// New returns the encoder registered under name: line or json.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "", "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	}
	return nil, errors.WithDetails(ErrUnknownFormat, "format", name)
}

var ErrUnknownFormat = errors.Base("unknown format")
