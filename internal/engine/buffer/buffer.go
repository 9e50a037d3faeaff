package buffer

import (
	"io"
	"sort"
	"unicode/utf8"
)

// Buffer holds immutable text with a line index.
// A Buffer is safe for concurrent reads.
type Buffer struct {
	text       string
	lineStarts []ByteOffset
	separators string
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithWordSeparators replaces the characters that end a word.
// Whitespace always separates words.
func WithWordSeparators(seps string) Option {
	return func(b *Buffer) {
		b.separators = seps
	}
}

// NewBufferFromString creates a buffer with the given content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := &Buffer{
		text:       s,
		separators: DefaultWordSeparators,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.indexLines()
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

func (b *Buffer) indexLines() {
	b.lineStarts = []ByteOffset{0}
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			b.lineStarts = append(b.lineStarts, ByteOffset(i+1))
		}
	}
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return b.text
}

// Bytes returns the buffer content as a byte slice copy.
func (b *Buffer) Bytes() []byte {
	return []byte(b.text)
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	return ByteOffset(len(b.text))
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() uint32 {
	return uint32(len(b.lineStarts))
}

// TextRange returns text in the given byte range, clamped to the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	start = b.clamp(start)
	end = b.clamp(end)
	if start >= end {
		return ""
	}
	return b.text[start:end]
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	if offset < 0 || offset >= b.Len() {
		return 0, false
	}
	return b.text[offset], true
}

// RuneAt returns the rune starting at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	if offset < 0 || offset >= b.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(b.text[offset:])
}

// RuneBefore returns the rune ending at the given byte offset.
// Returns utf8.RuneError and size 0 at the start of the buffer.
func (b *Buffer) RuneBefore(offset ByteOffset) (rune, int) {
	if offset <= 0 || offset > b.Len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRuneInString(b.text[:offset])
}

// OffsetToPoint converts a byte offset to a line/column point.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	offset = b.clamp(offset)
	line := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	}) - 1
	return Point{
		Line:   uint32(line),
		Column: uint32(offset - b.lineStarts[line]),
	}
}

// PointToOffset converts a line/column point to a byte offset.
// Points past the end of a line clamp to the line end.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	if int(p.Line) >= len(b.lineStarts) {
		return b.Len()
	}
	start := b.lineStarts[p.Line]
	end := b.Len()
	if int(p.Line)+1 < len(b.lineStarts) {
		end = b.lineStarts[p.Line+1] - 1
	}
	offset := start + ByteOffset(p.Column)
	if offset > end {
		offset = end
	}
	return offset
}

func (b *Buffer) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > b.Len() {
		return b.Len()
	}
	return offset
}
