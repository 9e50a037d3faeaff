// Package buffer provides a read-only text buffer with the lookups a
// documentation request needs: byte and line/column coordinates, word
// boundaries under a cursor, and the text preceding a word.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString(`$("#main").hide()`)
//
//	// Find the word under byte offset 12
//	word, ok := buf.WordAt(12)
//	if ok {
//	    fmt.Println(word.Text)            // "hide"
//	    fmt.Println(word.Preceding(32))   // `$("#main").`
//	}
//
// Offsets index the original bytes. Line endings are not normalized, so
// offsets reported by an editor for the file on disk stay valid.
package buffer
