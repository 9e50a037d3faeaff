// Package execctx provides the request passed to documentation handlers.
package execctx

import "github.com/dshills/gotodoc/internal/jslib"

// Request carries one lookup through the dispatcher.
// A Request is created per invocation and discarded afterwards.
type Request struct {
	// Token is the word under the cursor.
	Token string

	// Label is the full context label of the token.
	Label string

	// Key is the dispatch key that selected the handler. It is the last
	// label segment, or a library key when detection refined it.
	Key string

	// Library is the detected library key, empty if none.
	Library string

	// Source gives access to text before the token. May be nil.
	Source jslib.TextSource
}

// New creates a request for token in the given context label.
func New(token, label string) *Request {
	return &Request{Token: token, Label: label}
}

// WithSource attaches a preceding-text accessor and returns the request.
func (r *Request) WithSource(src jslib.TextSource) *Request {
	r.Source = src
	return r
}

// Preceding returns up to n bytes before the token, or "" without a source.
func (r *Request) Preceding(n int) string {
	if r.Source == nil {
		return ""
	}
	return r.Source.Preceding(n)
}

// StringSource is a TextSource over a fixed string that ends at the token.
type StringSource string

// Preceding implements jslib.TextSource.
func (s StringSource) Preceding(n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) > n {
		return string(s[len(s)-n:])
	}
	return string(s)
}
