package lsp

import (
	"bytes"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// offsetAt converts a protocol position, whose character counts UTF-16
// code units, into a byte offset of src. Positions past the end of a
// line clamp to the line end and positions past the end of src clamp to
// len(src).
func offsetAt(src []byte, pos protocol.Position) int {
	offset := pos.IndexIn(string(src))
	if offset != 0 || pos.Line == 0 && (pos.Character == 0 || bytes.HasPrefix(src, []byte("\n"))) {
		return offset
	}
	// IndexIn reports 0 for positions beyond the last line or character.
	return len(src)
}

// positionAt converts a byte offset of src into a protocol position.
func positionAt(src []byte, offset int) protocol.Position {
	if offset > len(src) {
		offset = len(src)
	}
	var pos protocol.Position
	for i := 0; i < offset; {
		r, size := utf8.DecodeRune(src[i:])
		if r == '\n' {
			pos.Line++
			pos.Character = 0
		} else {
			pos.Character += protocol.UInteger(utf16Len(r))
		}
		i += size
	}
	return pos
}

func rangeOf(src []byte, start, end int) protocol.Range {
	return protocol.Range{Start: positionAt(src, start), End: positionAt(src, end)}
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}
