package token

import (
	"gitlab.com/tozd/go/errors"
)

// ErrNoToken reports an offset that no token starts at. It means the
// tokenizer and the parser disagree about the input.
var ErrNoToken = errors.Base("no token at offset")

// Index maps the start offset of every token in a stream, sentinels
// included, to its position in that stream.
type Index struct {
	byOffset map[int]int
}

func NewIndex(s *Stream) *Index {
	ix := &Index{byOffset: make(map[int]int, s.Len())}
	for i, p := range s.Items() {
		ix.byOffset[p.Offset] = i
	}
	return ix
}

// Lookup returns the index of the token starting at offset.
func (ix *Index) Lookup(offset int) (int, error) {
	i, ok := ix.byOffset[offset]
	if !ok {
		return 0, errors.WithDetails(errors.Errorf("%w %d", ErrNoToken, offset), "offset", offset)
	}
	return i, nil
}

func (ix *Index) Len() int {
	return len(ix.byOffset)
}
