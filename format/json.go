package format

import (
	"encoding/json"
	"io"
)

// JSONEncoder writes a result as one indented JSON document. The token
// list is written once for the file rather than once per binding.
type JSONEncoder struct {
	w      io.Writer
	result Result
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(r Result) error {
	e.result = r
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

type jsonResult struct {
	Path     string        `json:"path,omitempty"`
	Kind     string        `json:"kind"`
	Tokens   []string      `json:"tokens"`
	Bindings []jsonBinding `json:"bindings"`
}

type jsonBinding struct {
	Name     string   `json:"name"`
	Indices  []int    `json:"indices"`
	Features []string `json:"features,omitempty"`
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	r := e.result
	data := jsonResult{
		Path:     r.Path,
		Kind:     string(r.Kind),
		Tokens:   []string{},
		Bindings: make([]jsonBinding, 0, len(r.Bindings)),
	}
	for i, b := range r.Bindings {
		if i == 0 {
			data.Tokens = b.SourceTokens
		}
		data.Bindings = append(data.Bindings, jsonBinding{
			Name:     b.Name(),
			Indices:  b.Indices,
			Features: b.Features,
		})
	}
	return json.MarshalIndent(data, "", "  ")
}
