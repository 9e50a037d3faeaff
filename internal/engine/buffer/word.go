package buffer

import (
	"strings"
	"unicode"
)

// DefaultWordSeparators are the punctuation characters that end a word.
const DefaultWordSeparators = "./\\()\"'-:,.;<>~!@#$%^&*|+=[]{}`~?"

// Word is a word found in a buffer together with its location.
// It implements jslib.TextSource through Preceding.
type Word struct {
	Range Range
	Text  string

	buf *Buffer
}

// Preceding returns up to n bytes ending immediately before the word.
func (w Word) Preceding(n int) string {
	if w.buf == nil || n <= 0 {
		return ""
	}
	return w.buf.TextRange(w.Range.Start-ByteOffset(n), w.Range.Start)
}

// IsEmpty reports whether the word has no text.
func (w Word) IsEmpty() bool {
	return w.Range.IsEmpty()
}

// WordAt returns the word touching offset. A cursor placed directly after
// a word selects that word. Returns false when offset is surrounded by
// separators or whitespace.
func (b *Buffer) WordAt(offset ByteOffset) (Word, bool) {
	offset = b.clamp(offset)

	start, end := offset, offset
	if r, size := b.RuneAt(offset); size > 0 && b.isWordRune(r) {
		end = b.scanForward(offset)
	}
	start = b.scanBackward(offset)

	if start == end {
		return Word{Range: NewRange(offset, offset), buf: b}, false
	}
	return Word{
		Range: NewRange(start, end),
		Text:  b.text[start:end],
		buf:   b,
	}, true
}

// WordsAt returns the non-empty words touching each offset, in order,
// dropping duplicates of the same range.
func (b *Buffer) WordsAt(offsets ...ByteOffset) []Word {
	seen := make(map[Range]bool, len(offsets))
	words := make([]Word, 0, len(offsets))
	for _, off := range offsets {
		w, ok := b.WordAt(off)
		if !ok || seen[w.Range] {
			continue
		}
		seen[w.Range] = true
		words = append(words, w)
	}
	return words
}

func (b *Buffer) scanForward(offset ByteOffset) ByteOffset {
	for offset < b.Len() {
		r, size := b.RuneAt(offset)
		if !b.isWordRune(r) {
			break
		}
		offset += ByteOffset(size)
	}
	return offset
}

func (b *Buffer) scanBackward(offset ByteOffset) ByteOffset {
	for offset > 0 {
		r, size := b.RuneBefore(offset)
		if !b.isWordRune(r) {
			break
		}
		offset -= ByteOffset(size)
	}
	return offset
}

func (b *Buffer) isWordRune(r rune) bool {
	if unicode.IsSpace(r) || r == unicode.ReplacementChar {
		return false
	}
	return !strings.ContainsRune(b.separators, r)
}
