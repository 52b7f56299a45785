// Package position converts between LSP positions, which count UTF-16 code
// units per line, and the UTF-8 byte offsets the scope engine works in.
package position

import (
	"math"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// unitLen is the UTF-16 length of r. Invalid bytes decode to U+FFFD and
// count as one unit.
func unitLen(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

// UTF16ToByteOffset returns the byte offset of UTF-16 column col in line.
// Columns past the end clamp to len(line); a column inside a surrogate pair
// clamps to the start of that character.
func UTF16ToByteOffset(line string, col int) int {
	units := 0
	for i, r := range line {
		n := unitLen(r)
		if units+n > col {
			return i
		}
		units += n
	}
	return len(line)
}

// ByteOffsetToUTF16 returns the UTF-16 column of byte offset off in s. An
// offset inside a multi-byte character counts up to that character.
func ByteOffsetToUTF16(s string, off int) int {
	off = min(max(off, 0), len(s))
	units := 0
	for i := 0; i < off; {
		r, size := utf8.DecodeRuneInString(s[i:])
		if i+size > off {
			break
		}
		units += unitLen(r)
		i += size
	}
	return units
}

// StringLengthUTF16 returns the length of s in UTF-16 code units
func StringLengthUTF16(s string) int {
	return ByteOffsetToUTF16(s, len(s))
}

// LineCount returns the number of lines in text; an empty text has one
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

// lineBounds returns the byte range of line n without its line break, or
// ok false when text has fewer lines
func lineBounds(text string, n int) (start, end int, ok bool) {
	for ; n > 0; n-- {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			return 0, 0, false
		}
		start += i + 1
	}
	end = len(text)
	if i := strings.IndexByte(text[start:], '\n'); i >= 0 {
		end = start + i
	}
	if end > start && text[end-1] == '\r' {
		end--
	}
	return start, end, true
}

// OffsetAt converts an LSP position to a byte offset in text. Lines past the
// end clamp to len(text); characters past the end of a line clamp to it.
func OffsetAt(text string, pos protocol.Position) int {
	start, end, ok := lineBounds(text, int(pos.Line))
	if !ok {
		return len(text)
	}
	return start + UTF16ToByteOffset(text[start:end], int(pos.Character))
}

// PositionAt converts a byte offset in text to an LSP position
func PositionAt(text string, offset int) protocol.Position {
	offset = min(max(offset, 0), len(text))
	before := text[:offset]
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return protocol.Position{
		Line:      toUint32(strings.Count(before, "\n")),
		Character: toUint32(ByteOffsetToUTF16(text[lineStart:], offset-lineStart)),
	}
}

// RangeOf converts the byte range [start, end) of text to an LSP range
func RangeOf(text string, start, end int) protocol.Range {
	return protocol.Range{Start: PositionAt(text, start), End: PositionAt(text, end)}
}

func toUint32(n int) uint32 {
	switch {
	case n < 0:
		return 0
	case n > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(n)
}
