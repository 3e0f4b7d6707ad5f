package token

import (
	"gitlab.com/tozd/go/errors"
)

var (
	ErrOutOfOrder = errors.Base("token offset out of order")
	ErrClosed     = errors.Base("token stream closed")
)

// Positioned is a token anchored at the byte offset where it starts.
type Positioned struct {
	Offset int
	Token  Token
}

// Stream is an ordered sequence of positioned tokens bracketed by the
// START and END sentinels. Offsets are strictly increasing.
type Stream struct {
	items  []Positioned
	closed bool
}

// NewStream returns a stream holding only the START sentinel.
func NewStream() *Stream {
	return &Stream{
		items: []Positioned{{Offset: StartOffset, Token: Start()}},
	}
}

// Append adds a token at offset. The offset must be greater than the
// previous one and the stream must not be closed.
func (s *Stream) Append(offset int, t Token) error {
	if s.closed {
		return errors.Errorf("%w: append at %d", ErrClosed, offset)
	}
	last := s.items[len(s.items)-1].Offset
	if offset <= last || offset >= EndOffset {
		return errors.Errorf("%w: %d after %d", ErrOutOfOrder, offset, last)
	}
	s.items = append(s.items, Positioned{Offset: offset, Token: t})
	return nil
}

// Close appends the END sentinel. Closing twice is a no-op.
func (s *Stream) Close() {
	if s.closed {
		return
	}
	s.items = append(s.items, Positioned{Offset: EndOffset, Token: End()})
	s.closed = true
}

func (s *Stream) Closed() bool {
	return s.closed
}

func (s *Stream) Len() int {
	return len(s.items)
}

func (s *Stream) At(i int) Positioned {
	return s.items[i]
}

// Items returns the positioned tokens in offset order. The slice must not
// be modified.
func (s *Stream) Items() []Positioned {
	return s.items
}

func (s *Stream) Tokens() []Token {
	tokens := make([]Token, len(s.items))
	for i, p := range s.items {
		tokens[i] = p.Token
	}
	return tokens
}

// Texts returns the text of every token, sentinels included, in the order
// used by Index.
func (s *Stream) Texts() []string {
	texts := make([]string, len(s.items))
	for i, p := range s.items {
		texts[i] = p.Token.Text
	}
	return texts
}

func (s *Stream) Index() *Index {
	return NewIndex(s)
}
