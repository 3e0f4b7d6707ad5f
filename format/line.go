package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LineEncoder writes one tab separated line per binding: the file, the
// bound name, the token indices and the features.
type LineEncoder struct {
	w      io.Writer
	result Result
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(r Result) error {
	e.result = r
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, b := range e.result.Bindings {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n",
			e.result.Path,
			b.Name(),
			indicesStr(b.Indices),
			featuresStr(b.Features),
		)
	}
	return []byte(sb.String()), nil
}

func indicesStr(indices []int) string {
	parts := make([]string, len(indices))
	for i, ix := range indices {
		parts[i] = strconv.Itoa(ix)
	}
	return strings.Join(parts, ",")
}

func featuresStr(features []string) string {
	if len(features) == 0 {
		return "-"
	}
	return strings.Join(features, " ")
}
